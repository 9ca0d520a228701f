package bar

import (
	"log"

	"github.com/gotk3/gotk3/gtk"
)

// ShowExplanation presents the offline explanation dialog. Fire and forget;
// the dialog destroys itself on any response.
func (b *Bar) ShowExplanation() {
	dialog := gtk.MessageDialogNew(
		b.window,
		gtk.DIALOG_MODAL,
		gtk.MESSAGE_INFO,
		gtk.BUTTONS_OK,
		"%s",
		b.cfg.Bar.ExplanationText,
	)
	if dialog == nil {
		log.Printf("[BAR] Failed to create explanation dialog")
		return
	}

	dialog.SetTitle(b.cfg.Bar.OfflineText)
	dialog.Connect("response", func() {
		dialog.Destroy()
	})
	dialog.Show()
}
