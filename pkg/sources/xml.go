package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/agentstation/nightaudit/pkg/errors"
)

// decodeXML decodes an export into v. The hotel system writes reports in
// legacy code pages (windows-1254, iso-8859-9) as often as UTF-8, so the
// declared charset is honoured.
func decodeXML(ctx context.Context, r io.Reader, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.NewParseError("xml", "", "empty document", err)
		}
		return errors.WrapParse("xml", "", err)
	}
	return nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(strings.ToLower(strings.TrimSpace(label)))
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// checkRoot reports a shape error when the document element is not root.
func checkRoot(src ID, got xml.Name, root string) error {
	if got.Local != root {
		return errors.NewShapeError(src.String(), root).
			WithReason(fmt.Sprintf("document element is <%s>", got.Local))
	}
	return nil
}
