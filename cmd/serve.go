package cmd

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"cooktime/calculator"
	"cooktime/server"
)

var addr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve cook time calculations over websocket at /ws",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("addr") {
			addr = cfg.Addr
		}
		upgrader := websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}
		calc := calculator.NewCalculator(cfg)
		s := server.NewServer(addr, upgrader, calc, calculator.NewExecutor(calc, cfg.Workers))
		return s.Serve()
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", calculator.DefaultAddr, "Listen address")
}
