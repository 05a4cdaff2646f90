package server

import (
	"fmt"

	"github.com/NeuralTrust/ParamGuard/pkg/config"
	"github.com/NeuralTrust/ParamGuard/pkg/infra/prometheus"
	"github.com/NeuralTrust/ParamGuard/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	ProxyServerDI struct {
		Config  *config.Config
		Logger  *logrus.Logger
		Routers []router.ServerRouter
	}
	ProxyServer struct {
		*BaseServer
	}
)

func NewProxyServer(di ProxyServerDI) *ProxyServer {
	if di.Config.Metrics.Enabled {
		prometheus.Initialize(prometheus.MetricsConfig{
			EnableLatency: di.Config.Metrics.EnableLatency,
		})
	}

	s := &ProxyServer{
		BaseServer: NewBaseServer(di.Config, di.Logger).WithRouters(di.Routers...),
	}
	s.BaseServer.setupMetricsEndpoint()
	return s
}

func (s *ProxyServer) Run() error {
	addr := fmt.Sprintf(":%d", s.Config.Server.ProxyPort)
	s.Logger.WithFields(logrus.Fields{
		"addr":     addr,
		"mode":     s.Config.Guard.Mode,
		"upstream": s.Config.Upstream.URL,
	}).Info("starting proxy server")
	return s.Router.Listen(addr)
}
