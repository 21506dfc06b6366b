package shapeguard

import (
	"bytes"
	"errors"
	"io"

	"github.com/shapeguard/shapeguard/i18n"
	"github.com/shapeguard/shapeguard/internal/jsonval"
)

// Source abstracts over polymorphic value inputs. Values of unknown
// provenance usually arrive as JSON; other representations can implement
// Source to feed the same classifiers.
type Source interface {
	DecodeValue() (any, error)
}

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return jsonSource{r: bytes.NewReader(b)} }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return jsonSource{r: r} }

type jsonSource struct{ r io.Reader }

func (s jsonSource) DecodeValue() (any, error) { return jsonval.Decode(s.r) }

// DecodeValue decodes one value from the source, mapping decoder failures
// to Issues. Composites come back as map[string]any and numbers as
// json.Number, both of which the classifiers understand directly.
func DecodeValue(src Source) (any, error) {
	if src == nil {
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: "nil source"}}
	}
	v, err := src.DecodeValue()
	if err != nil {
		var dup jsonval.DupKeyError
		if errors.As(err, &dup) {
			return nil, Issues{Issue{Path: dup.Path, Code: CodeDuplicateKey, Message: i18n.T(CodeDuplicateKey, nil), Cause: err}}
		}
		return nil, Issues{Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	return v, nil
}
