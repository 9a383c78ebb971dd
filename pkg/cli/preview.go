package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/Fepozopo/pimg/pkg/parimg"
)

// Inline preview for kitty and iTerm2-compatible terminals. Preview is
// strictly best-effort: callers log and continue when no protocol is
// available.

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	return strings.Contains(strings.ToLower(os.Getenv("TERM")), "kitty")
}

func isITerm() bool {
	if os.Getenv("TERM_PROGRAM") == "iTerm.app" || os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	// other terminals implementing the OSC 1337 inline-file sequence
	switch os.Getenv("TERM_PROGRAM") {
	case "WezTerm", "vscode", "Tabby", "WarpTerminal":
		return true
	}
	return false
}

// PreviewImage renders img inline in the current terminal, if it speaks the
// kitty graphics protocol or the iTerm2 OSC 1337 sequence.
func PreviewImage(img *parimg.Image) error {
	if img == nil {
		return fmt.Errorf("no image to preview")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.ToNRGBA()); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}

	switch {
	case isKitty():
		debugf("previewing via kitty graphics protocol")
		return writeKitty(buf.Bytes())
	case isITerm():
		debugf("previewing via OSC 1337")
		return writeITerm(buf.Bytes())
	}
	return fmt.Errorf("no supported terminal for inline preview")
}

// writeKitty transmits PNG data with the kitty graphics protocol, chunked
// base64 inside ESC _G ... ESC \ sequences.
func writeKitty(data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096
	first := true
	for len(encoded) > 0 {
		chunk := encoded
		if len(chunk) > chunkSize {
			chunk = chunk[:chunkSize]
		}
		encoded = encoded[len(chunk):]
		more := 0
		if len(encoded) > 0 {
			more = 1
		}
		var ctrl string
		if first {
			ctrl = fmt.Sprintf("a=T,f=100,m=%d", more)
			first = false
		} else {
			ctrl = fmt.Sprintf("m=%d", more)
		}
		if _, err := fmt.Fprintf(os.Stdout, "\x1b_G%s;%s\x1b\\", ctrl, chunk); err != nil {
			return err
		}
	}
	fmt.Println()
	return nil
}

// writeITerm transmits PNG data with the iTerm2 inline-file sequence.
func writeITerm(data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	_, err := fmt.Fprintf(os.Stdout,
		"\x1b]1337;File=inline=1;size=%d:%s\a\n", len(data), encoded)
	return err
}
