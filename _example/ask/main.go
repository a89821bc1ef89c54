package main

import (
	"fmt"
	"os"
	"strings"

	console "github.com/joeycumines/go-console"
)

var fruits = []string{"apple", "apricot", "banana", "blackberry", "blueberry", "cherry"}

func main() {
	s := console.NewStandardStreams()
	defer s.Close()

	cfg, err := console.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.Apply(s)

	name := s.Question()
	name.SetPrompt(`<cs color="yellow">Your name?</cs>`)
	name.SetPlaceholder("anonymous")
	n, ok, err := name.Ask()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !ok || n == "" {
		n = "anonymous"
	}

	fruit := s.Question()
	fruit.SetPrompt("Favourite fruit?")
	_ = fruit.SetAutocomplete(console.Resolver(func(written string) []string {
		return fruits
	}))
	f, _, err := fruit.Ask()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	secret := s.Question()
	secret.SetPrompt("Secret word?")
	secret.EnableSecretTyping()
	w, _, err := secret.Ask()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	_, _ = s.Out.WriteLn(fmt.Sprintf(`<cs color="green" style="bold">%s</cs> likes %s, and the secret has %d letters`,
		n, f, len([]rune(strings.TrimSpace(w)))))
}
