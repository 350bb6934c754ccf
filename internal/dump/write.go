package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/bitsctl/internal/protocol/packet"
	"gopkg.in/yaml.v3"
)

// Format selects a dump encoding.
type Format string

const (
	FormatText Format = "text"
	FormatExpr Format = "expr"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// ParseFormat normalizes a format name.
func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	switch f {
	case FormatText, FormatExpr, FormatJSON, FormatYAML, FormatCBOR:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("dump: unknown format %q", raw)
	}
}

// Write renders p to w in format f.
func Write(w io.Writer, p *packet.Packet, f Format) error {
	switch f {
	case FormatText:
		return writeText(w, FromPacket(p))
	case FormatExpr:
		_, err := fmt.Fprintln(w, p.String())
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(FromPacket(p))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(FromPacket(p)); err != nil {
			return err
		}
		return enc.Close()
	case FormatCBOR:
		data, err := EncodeCBOR(FromPacket(p))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("dump: unknown format %q", f)
	}
}

func writeText(w io.Writer, n Node) error {
	var sb strings.Builder
	appendText(&sb, n, 0)
	_, err := io.WriteString(w, sb.String())
	return err
}

// maxIndent caps text indentation so output stays linear in tree size.
// Deeper lines keep the capped indent and carry their depth explicitly.
const maxIndent = 32

func appendText(sb *strings.Builder, n Node, depth int) {
	if depth > maxIndent {
		sb.WriteString(strings.Repeat("  ", maxIndent))
		fmt.Fprintf(sb, "(depth %d) ", depth+1)
	} else {
		sb.WriteString(strings.Repeat("  ", depth))
	}
	if n.Type == typeLiteral {
		fmt.Fprintf(sb, "literal v%d = %s\n", n.Version, n.Value)
		return
	}
	fmt.Fprintf(sb, "%s v%d", n.Type, n.Version)
	if n.LengthType != "" {
		fmt.Fprintf(sb, " [%s]", n.LengthType)
	}
	sb.WriteByte('\n')
	for _, child := range n.Children {
		appendText(sb, child, depth+1)
	}
}
