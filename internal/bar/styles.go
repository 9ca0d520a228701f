package bar

import (
	"fmt"
	"log"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"

	"github.com/oxidane/netbar/internal/config"
)

const stylesTemplate = `
window#netbar {
    background-color: transparent;
}

window#netbar label {
    color: %[3]s;
    font-size: 13px;
    font-weight: bold;
}

window#netbar.netbar-offline {
    background-color: %[1]s;
}

window#netbar.netbar-syncing {
    background-color: %[2]s;
}
`

var globalStyleProvider *gtk.CssProvider

// SetupStyles installs the bar's CSS for the whole screen using the
// configured colors.
func SetupStyles(cfg *config.Config) {
	screen, err := gdk.ScreenGetDefault()
	if err != nil || screen == nil {
		log.Printf("Warning: Failed to get default screen: %v", err)
		return
	}

	css := fmt.Sprintf(stylesTemplate,
		cfg.Bar.Colors.Offline,
		cfg.Bar.Colors.Synchronizing,
		cfg.Bar.Colors.Foreground,
	)

	provider, _ := gtk.CssProviderNew()
	if err := provider.LoadFromData(css); err != nil {
		log.Printf("Warning: Failed to load bar styles: %v", err)
		return
	}

	globalStyleProvider = provider
	gtk.AddProviderForScreen(screen, provider, gtk.STYLE_PROVIDER_PRIORITY_APPLICATION)
}
