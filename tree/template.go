package tree

import (
	"errors"
	"fmt"
	"os"
	"strings"

	fs "github.com/dreitier/treelist/storage/fs"
)

const Placeholder = "{tree_structure}"

var ErrMissingPlaceholder = errors.New("template does not contain " + Placeholder)

// LoadTemplate reads the HTML template. A missing file is an error.
func LoadTemplate(path string) (string, error) {
	valid, err := fs.IsFilePathValid(path)
	if err != nil {
		return "", fmt.Errorf("failed to access template %s: %w", path, err)
	}

	if !valid {
		return "", fmt.Errorf("template %s does not exist", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", path, err)
	}

	return string(data), nil
}

// Fill replaces every {tree_structure} in template with markup. Doubled braces are unescaped to single braces so
// that templates may contain literal braces, e.g. in inline CSS.
func Fill(template string, markup string) (string, error) {
	var sb strings.Builder
	found := false

	for i := 0; i < len(template); {
		switch {
		case strings.HasPrefix(template[i:], "{{"):
			sb.WriteByte('{')
			i += 2
		case strings.HasPrefix(template[i:], "}}"):
			sb.WriteByte('}')
			i += 2
		case strings.HasPrefix(template[i:], Placeholder):
			sb.WriteString(markup)
			found = true
			i += len(Placeholder)
		default:
			sb.WriteByte(template[i])
			i++
		}
	}

	if !found {
		return "", ErrMissingPlaceholder
	}

	return sb.String(), nil
}
