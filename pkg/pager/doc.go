// Package pager turns a list of descriptions, images, embeds or embed fields
// into a multi-page message with first/prev/next/last buttons.
//
// The package is host-neutral: it renders a Payload value and talks to the
// chat platform only through the small interfaces in host.go. Bridges for
// Discord (pkg/pager/discord) and Telegram (pkg/pager/telegram) implement
// them.
//
// Typical use:
//
//	p, err := pager.New(handle, pager.WithLimit(10))
//	if err != nil {
//		return err
//	}
//	p.SetTitle("Members").SetDescriptions(lines...)
//	_, err = p.Render(ctx)
package pager
