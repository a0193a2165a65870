package main

import (
	"github.com/samber/lo"
	"github.com/shikisync/shikisync/cmd"
	"github.com/shikisync/shikisync/config"
	"github.com/shikisync/shikisync/internal/cache"
	"github.com/shikisync/shikisync/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cache.CollectGarbage()
	cmd.Execute()
}
