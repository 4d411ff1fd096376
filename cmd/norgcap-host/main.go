package main

import (
	"log"

	"github.com/neovim/go-client/nvim/plugin"

	"github.com/andreadev-it/norgcap/internal/nvimhost"
)

func main() {
	plugin.Main(func(p *plugin.Plugin) error {
		log.Println("[norgcap-host] registering handlers")
		return nvimhost.Register(p)
	})
}
