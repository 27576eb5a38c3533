package main

import (
	"fmt"
	"os"

	"imageviewer/internal/app"
	"imageviewer/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	st, err := cli.Prepare(os.Args[1:], os.Stderr)
	if err != nil {
		if msg := cli.Message(err); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		return cli.ExitCode(err)
	}
	defer func() { _ = st.Logger.Sync() }()

	application, err := app.New(app.Options{
		Width:       st.Config.Window.Width,
		Height:      st.Config.Window.Height,
		Title:       st.Config.Window.Title,
		Set:         st.Set,
		ErrorText:   st.ErrorText,
		ZoomInStep:  st.Config.Zoom.InStep,
		ZoomOutStep: st.Config.Zoom.OutStep,
		Logger:      st.Logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer application.Cleanup()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
