package cmd

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/lumen-rt/lumen/pkg/scene"
)

var sceneDescriptions = map[string]string{
	"cornell": "Cornell box with a metal and a glass sphere",
	"default": "Ground plane, three material spheres, sphere light",
	"spheres": "10x10 grid of metal spheres under a distant light",
}

// ListScenes prints the available built-in scenes
func ListScenes(ctx *cli.Context) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, name := range scene.Names() {
		table.Append([]string{name, sceneDescriptions[name]})
	}
	table.Render()
	return nil
}
