package printer

import (
	"fmt"
	"io"
	"os"
)

// Separator is written after every listing block.
const Separator = "-------------------------"

var _ Printer = (*Stdout)(nil)

// Stdout implements [Printer] as human readable text.
type Stdout struct {
	Out   io.Writer
	Units Units
}

// NewStdout writes text to w, or os.Stdout when w is nil. Empty unit labels
// fall back to [DefaultUnits].
func NewStdout(w io.Writer, units Units) *Stdout {
	if w == nil {
		w = os.Stdout
	}
	if units.Fiat == "" {
		units.Fiat = DefaultUnits.Fiat
	}
	if units.Crypto == "" {
		units.Crypto = DefaultUnits.Crypto
	}
	return &Stdout{Out: w, Units: units}
}

// Write writes data to the output stream.
func (s *Stdout) Write(data ...any) error {
	_, err := fmt.Fprint(s.out(), data...)
	return err
}

// Listing implements [Printer].
func (s *Stdout) Listing(l ListingPrice) error {
	var price string
	if l.Fiat != nil {
		price = fmt.Sprintf("Price: %s %s (%s %s)",
			l.Fiat.StringFixed(2), s.Units.Fiat,
			l.Crypto.StringFixed(5), s.Units.Crypto)
	} else {
		price = fmt.Sprintf("Price: %s %s (%s price unavailable or invalid)",
			l.Crypto.StringFixed(5), s.Units.Crypto, s.Units.Fiat)
	}

	return s.Write(
		fmt.Sprintf("Axie ID: %s\n", l.ID),
		fmt.Sprintf("Name: %s\n", l.Name),
		fmt.Sprintf("Breed Count: %d\n", l.BreedCount),
		price, "\n",
		fmt.Sprintf("Link: %s\n", l.URL),
		Separator, "\n",
	)
}

// Notice implements [Printer].
func (s *Stdout) Notice(msg string) error {
	return s.Write(msg, "\n")
}

func (s *Stdout) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}
