package cmd

import (
	"bytes"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/scene"
)

// List the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	writeSceneTable(&buf, scene.List())
	logger.Noticef("available scenes\n%s", buf.String())
	return nil
}

func writeSceneTable(w io.Writer, scenes []scene.Info) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, info := range scenes {
		table.Append([]string{info.Name, info.Description})
	}
	table.Render()
}
