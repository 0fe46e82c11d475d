// Package env provides unified environment variable formatting across
// multiple output formats. It supports bash, dotenv, env, and github formats
// with consistent escaping and heredoc handling for multiline values.
package env

import (
	"fmt"
	"sort"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/google/uuid"

	errUtils "github.com/matrixci/matrixci/errors"
)

// Format represents an environment variable output format.
type Format string

const (
	// FormatEnv outputs key=value pairs without quoting.
	FormatEnv Format = "env"
	// FormatDotenv outputs key=value pairs with shell-safe quoting.
	FormatDotenv Format = "dotenv"
	// FormatBash outputs export key=value statements with shell-safe quoting.
	FormatBash Format = "bash"
	// FormatGitHub outputs key=value or heredoc syntax for multiline values.
	// Used for $GITHUB_OUTPUT and $GITHUB_ENV in GitHub Actions.
	FormatGitHub Format = "github"
)

// SupportedFormats lists all supported environment variable output formats.
var SupportedFormats = []Format{FormatEnv, FormatDotenv, FormatBash, FormatGitHub}

// ParseFormat converts a format string to a Format type.
// Returns an error for unsupported format strings.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "env":
		return FormatEnv, nil
	case "dotenv":
		return FormatDotenv, nil
	case "bash":
		return FormatBash, nil
	case "github":
		return FormatGitHub, nil
	default:
		return "", errUtils.Wrapf(errUtils.ErrInvalidFormat, "unsupported format: %s", s)
	}
}

// FormatData formats key-value data in the specified format.
// Keys are sorted alphabetically for consistent output.
func FormatData(data map[string]string, format Format) (string, error) {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		line, err := FormatValue(key, data[key], format)
		if err != nil {
			return "", err
		}
		sb.WriteString(line)
	}

	return sb.String(), nil
}

// FormatValue formats a single key-value pair in the specified format.
func FormatValue(key, value string, format Format) (string, error) {
	switch format {
	case FormatEnv:
		return fmt.Sprintf("%s=%s\n", key, value), nil
	case FormatDotenv:
		return fmt.Sprintf("%s=%s\n", key, shellescape.Quote(value)), nil
	case FormatBash:
		return fmt.Sprintf("export %s=%s\n", key, shellescape.Quote(value)), nil
	case FormatGitHub:
		return formatGitHubValue(key, value), nil
	default:
		return "", errUtils.Wrapf(errUtils.ErrInvalidFormat, "unsupported format: %s", format)
	}
}

// formatGitHubValue formats a key-value pair for GitHub Actions.
// Multiline values use the heredoc syntax with a random delimiter so the
// value itself can never terminate the block.
func formatGitHubValue(key, value string) string {
	if !strings.Contains(value, "\n") {
		return fmt.Sprintf("%s=%s\n", key, value)
	}

	delimiter := "ghadelimiter_" + uuid.NewString()
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter)
}
