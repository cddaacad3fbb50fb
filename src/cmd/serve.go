package cmd

import (
	"github.com/fundflare/mirror/src/mirror"
	"github.com/fundflare/mirror/src/utils/common"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the campaign mirror REST API and run the reconciliation flows",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		config, err := common.GetConfig(ctx)
		if err != nil {
			return
		}

		controller, err := mirror.NewController(config)
		if err != nil {
			return
		}

		err = controller.Start()
		if err != nil {
			return
		}

		<-ctx.Done()

		controller.StopWait()

		return
	},
}
