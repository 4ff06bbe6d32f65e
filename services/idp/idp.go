package main

import (
	"flag"
	"fmt"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/zrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/pkg/idppb"
	"github.com/shopfabric/backend/pkg/rpctransport"
	"github.com/shopfabric/backend/services/idp/internal/config"
	"github.com/shopfabric/backend/services/idp/internal/handler"
	"github.com/shopfabric/backend/services/idp/internal/server"
	"github.com/shopfabric/backend/services/idp/internal/svc"
)

var configFile = flag.String("f", "etc/idp.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)
	errorsx.Register()

	svcCtx, err := svc.NewServiceContext(c)
	if err != nil {
		panic(err)
	}

	rpcServer := zrpc.MustNewServer(c.RpcServerConf, func(grpcServer *grpc.Server) {
		idppb.RegisterIdpServiceServer(grpcServer, server.NewIdpServer(svcCtx))
		if c.Mode == service.DevMode || c.Mode == service.TestMode {
			reflection.Register(grpcServer)
		}
	})
	rpcServer.AddUnaryInterceptors(rpctransport.UnaryServerInterceptor(c.InternalRPCSecret))
	go func() {
		fmt.Printf("idp: rpc server listening at %s\n", c.RpcServerConf.ListenOn)
		rpcServer.Start()
	}()
	defer rpcServer.Stop()

	restServer := rest.MustNewServer(c.RestConf, rest.WithCors("*"))
	defer restServer.Stop()
	handler.RegisterHandlers(restServer, svcCtx)

	fmt.Printf("idp: http server listening at %s:%d\n", c.Host, c.Port)
	restServer.Start()
}
