package main

import (
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"

	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/orchestrator/internal/config"
	"github.com/shopfabric/backend/services/orchestrator/internal/handler"
	"github.com/shopfabric/backend/services/orchestrator/internal/svc"
)

var configFile = flag.String("f", "etc/orchestrator.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)
	errorsx.Register()

	svcCtx, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}

	restServer := rest.MustNewServer(c.RestConf, rest.WithCors("*"))
	defer restServer.Stop()
	handler.RegisterHandlers(restServer, svcCtx)

	fmt.Printf("orchestrator: http server listening at %s:%d\n", c.Host, c.Port)
	restServer.Start()
}
