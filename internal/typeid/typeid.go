package typeid

import (
	"fmt"
	"strings"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixPath    = "path"
	PrefixGroup   = "group"
	PrefixText    = "text"
	PrefixLayer   = "layer"
	PrefixSession = "session"
	PrefixDoc     = "doc"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewPathID() string    { return New(PrefixPath) }
func NewGroupID() string   { return New(PrefixGroup) }
func NewTextID() string    { return New(PrefixText) }
func NewLayerID() string   { return New(PrefixLayer) }
func NewSessionID() string { return New(PrefixSession) }
func NewDocID() string     { return New(PrefixDoc) }

// Prefix returns the type prefix of an id without validating the suffix.
func Prefix(id string) string {
	i := strings.LastIndexByte(id, '_')
	if i < 0 {
		return ""
	}
	return id[:i]
}

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
