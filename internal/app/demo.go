package app

import (
	"fmt"
	"strconv"
	"strings"

	"pewpager/internal/config"
	"pewpager/pkg/pager"
	logx "pewpager/pkg/logx"
)

const (
	demoColor      = 0x5865F2
	demoTitle      = "Demo pages"
	maxDemoLimit   = 25
	demoFieldsMode = "fields"
)

// demoRequest is a parsed /pages invocation: "/pages [limit] [fields]".
type demoRequest struct {
	limit  int
	fields bool
}

func parseDemoArgs(args []string) (demoRequest, error) {
	var req demoRequest
	for _, a := range args {
		a = strings.ToLower(strings.TrimSpace(a))
		switch {
		case a == "":
		case a == demoFieldsMode:
			req.fields = true
		default:
			n, err := strconv.Atoi(a)
			if err != nil {
				return req, fmt.Errorf("unknown argument %q (want a page size or %q)", a, demoFieldsMode)
			}
			if n < 1 || n > maxDemoLimit {
				return req, fmt.Errorf("page size must be between 1 and %d", maxDemoLimit)
			}
			req.limit = n
		}
	}
	return req, nil
}

func demoEntries(n int) []string {
	width := len(strconv.Itoa(n))
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("`%0*d.` Entry number %d", width, i+1, i+1)
	}
	return out
}

func demoFields(n int) []pager.EmbedField {
	out := make([]pager.EmbedField, n)
	for i := range out {
		out[i] = pager.EmbedField{
			Name:   fmt.Sprintf("Entry %d", i+1),
			Value:  fmt.Sprintf("Value of entry %d", i+1),
			Inline: true,
		}
	}
	return out
}

// newDemoPager builds a paginator over the generated demo list with the
// configured defaults, ready to be dispatched on h.
func newDemoPager(h pager.Handle, opts pager.Options, demo config.DemoConfig, req demoRequest, log logx.Logger) (*pager.Paginator, error) {
	p, err := pager.New(h, pager.WithOptions(opts), pager.WithLogger(log))
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(demo.Title)
	if title == "" {
		title = demoTitle
	}
	p.SetTitle(title).SetColor(demoColor)
	if req.limit > 0 {
		p.SetLimit(req.limit)
	}

	n := demo.ItemsOrDefault()
	if req.fields {
		p.SetFields(demoFields(n)...).PaginateFields(true)
	} else {
		p.SetDescriptions(demoEntries(n)...)
	}
	return p, nil
}
