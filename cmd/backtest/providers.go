package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rxtech-lab/argo-quant/pkg/marketdata"
	"github.com/urfave/cli/v3"
)

func providersAction(_ context.Context, _ *cli.Command) error {
	text, err := renderProviders()
	if err != nil {
		return err
	}

	fmt.Print(text)

	return nil
}

// renderProviders lists every supported provider with its request limit.
func renderProviders() (string, error) {
	var b strings.Builder

	for _, name := range marketdata.GetSupportedProviders() {
		info, err := marketdata.GetProviderInfo(name)
		if err != nil {
			return "", err
		}

		auth := ""
		if info.RequiresAuth {
			auth = " (API key required)"
		}

		b.WriteString(TitleStyle.Render(fmt.Sprintf("%-8s %s", info.Name, info.DisplayName)))
		b.WriteString(auth)
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s\n", HelpStyle.Render(info.Description))
		fmt.Fprintf(&b, "  up to %d bars per request\n", info.MaxLimit)
	}

	return b.String(), nil
}
