package sample

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/anoideaopen/mx/core/target"
	"github.com/sirupsen/logrus"
)

// Service is a long running component with a lifecycle.
type Service struct {
	Endpoint string

	started  atomic.Int64
	restarts atomic.Int32
}

func NewService(endpoint string) *Service {
	s := &Service{Endpoint: endpoint}
	s.started.Store(time.Now().UnixNano())
	return s
}

func (s *Service) Restart() string {
	s.restarts.Add(1)
	s.started.Store(time.Now().UnixNano())
	return fmt.Sprintf("restarted %s", s.Endpoint)
}

func (s *Service) GetUptime() time.Duration {
	return time.Since(time.Unix(0, s.started.Load()))
}

func (s *Service) GetRestarts() int32 {
	return s.restarts.Load()
}

// LoggedService logs calls before passing them on to the wrapped Service. It is
// managed as a Service.
type LoggedService struct {
	target.Proxy
	*Service

	log *logrus.Entry
}

func NewLoggedService(s *Service, log *logrus.Entry) *LoggedService {
	return &LoggedService{Service: s, log: log}
}

func (l *LoggedService) Restart() string {
	l.log.WithField("endpoint", l.Endpoint).Info("restart requested")
	return l.Service.Restart()
}
