package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/gpuresize"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show GPU device status",
	Run: func(cmd *cobra.Command, args []string) {
		p := gpuresize.NewProcessor()
		defer p.Close()

		fmt.Println(p.Init())
		fmt.Printf("devices: %d\n", p.DeviceCount())
		if name := p.AdapterName(); name != "" {
			fmt.Printf("adapter: %s\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
