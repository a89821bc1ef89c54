package main

import (
	"fmt"
	"strings"
	"time"

	console "github.com/joeycumines/go-console"
)

func main() {
	s := console.NewStandardStreams()
	defer s.Close()
	out := s.Out

	_, _ = out.WriteLn("Downloading...")
	bar := out.Section()
	_ = bar.PlaceHere()
	_, _ = out.WriteLn("")
	_, _ = out.WriteLn(`<cs color="dark_grey">(this line stays below the bar)</cs>`)

	for i := 0; i <= 20; i++ {
		_, _ = bar.Overwrite(fmt.Sprintf(`<cs color="cyan">[%s%s]</cs> %3d%%`,
			strings.Repeat("#", i), strings.Repeat(" ", 20-i), i*5))
		time.Sleep(50 * time.Millisecond)
	}

	_, _ = out.Write("done", console.AtVerbosity(console.VerbosityVerbose))
	_ = out.MoveCursorToTipPosition()
}
