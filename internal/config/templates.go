package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "bitsctl", "decoder":
		return decoderTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const decoderTemplate = `# input file holding the transmission on its first non-blank line
input = "inputs/day16.txt"
# 0 means unlimited nesting
max_depth = 0
# text | expr | json | yaml | cbor
format = "text"
# big | uint64
overflow = "big"
metrics_file = ""
log_level = "info"
`
