package notify_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"livestock/internal/adapters/out/notify"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisPublisherIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
}

func (s *RedisPublisherIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	s.Require().NoError(err)

	s.client = notify.NewRedisClient(fmt.Sprintf("%s:%s", host, port.Port()), "")
	s.Require().NoError(s.client.Ping(ctx).Err())
}

func (s *RedisPublisherIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *RedisPublisherIntegrationTestSuite) TestPublish_DeliversJSONToSubscribers() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	const channel = "livestock.test"
	sub := s.client.Subscribe(ctx, channel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	s.Require().NoError(err)

	e := newEvent("LAT-20250314-093000-001")
	s.Require().NoError(notify.NewRedisPublisher(s.client, channel).Publish(ctx, e))

	select {
	case msg := <-sub.Channel():
		var got map[string]any
		s.Require().NoError(json.Unmarshal([]byte(msg.Payload), &got))
		s.Equal("HoldingCreated", got["event"])
		s.Equal(e.AggregateID().String(), got["aggregate_id"])
		s.Equal("alice", got["actor"])
		s.Equal(e.Serial, got["serial"])
	case <-ctx.Done():
		s.Fail("no message received")
	}
}

func TestRedisPublisherIntegrationTestSuite(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(RedisPublisherIntegrationTestSuite))
}
