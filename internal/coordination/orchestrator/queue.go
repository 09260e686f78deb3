// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/coordination-detector/internal/metrics"
)

// QueueConfig configures the one-subject-per-job NATS JetStream queue.
type QueueConfig struct {
	URL              string
	StreamName       string
	DurableName      string
	QueueGroup       string
	SubscribersCount int
	MaxDeliver       int
	MaxAckPending    int
	AckWaitTimeout   time.Duration
}

// DefaultQueueConfig returns production defaults: one durable consumer
// group, at-least-once delivery, synchronous ack.
func DefaultQueueConfig(url string) QueueConfig {
	return QueueConfig{
		URL:              url,
		StreamName:       "COORDINATION_JOBS",
		DurableName:      "coordination-workers",
		QueueGroup:       "coordination-workers",
		SubscribersCount: 1,
		MaxDeliver:       5,
		MaxAckPending:    256,
		AckWaitTimeout:   30 * time.Second,
	}
}

// Queue wraps a Watermill NATS JetStream publisher/subscriber pair,
// publishing one message per job onto a per-job subject so that a crashed
// worker's in-flight job is redelivered to another consumer in the group.
type Queue struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     watermill.LoggerAdapter
}

// NewQueue opens a Watermill publisher and a durable JetStream subscriber
// bound to cfg.StreamName.
func NewQueue(cfg QueueConfig, logger watermill.LoggerAdapter) (*Queue, error) {
	if logger == nil {
		logger = watermill.NewStdLogger(false, false)
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:       cfg.URL,
		Marshaler: &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			TrackMsgId: true,
			PublishOptions: []natsgo.PubOpt{
				natsgo.RetryAttempts(3),
				natsgo.RetryWait(100 * time.Millisecond),
			},
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create job queue publisher: %w", err)
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.URL,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: cfg.SubscribersCount,
		AckWaitTimeout:   cfg.AckWaitTimeout,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{
			AckAsync:      false,
			AutoProvision: false,
			DurablePrefix: cfg.DurableName,
			SubscribeOptions: []natsgo.SubOpt{
				natsgo.BindStream(cfg.StreamName),
				natsgo.MaxDeliver(cfg.MaxDeliver),
				natsgo.MaxAckPending(cfg.MaxAckPending),
				natsgo.AckWait(cfg.AckWaitTimeout),
			},
		},
	}, logger)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("create job queue subscriber: %w", err)
	}

	return &Queue{publisher: pub, subscriber: sub, logger: logger}, nil
}

// jobSubject is the per-job NATS subject a submitted job is published on.
func jobSubject(jobID string) string {
	return SubjectJobSubmitted + "." + jobID
}

// Enqueue publishes a job onto its own subject, using the job id as the
// NATS dedup header so a retried submission is never processed twice.
func (q *Queue) Enqueue(_ context.Context, job Job) error {
	msg := message.NewMessage(job.ID, []byte(job.ID))
	msg.Metadata.Set(natsgo.MsgIdHdr, job.ID)
	msg.Metadata.Set("fingerprint", job.Fingerprint)
	if err := q.publisher.Publish(jobSubject(job.ID), msg); err != nil {
		return err
	}
	metrics.JobQueueDepth.Inc()
	return nil
}

// Consume subscribes to every job subject under SubjectJobSubmitted via
// JetStream's wildcard matching and invokes handle for each delivery,
// acking on success and nacking (triggering redelivery) on error.
func (q *Queue) Consume(ctx context.Context, handle func(ctx context.Context, jobID string) error) error {
	messages, err := q.subscriber.Subscribe(ctx, SubjectJobSubmitted+".>")
	if err != nil {
		return fmt.Errorf("subscribe to job subjects: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			jobID := string(msg.Payload)
			if err := handle(ctx, jobID); err != nil {
				q.logger.Error("job processing failed", err, watermill.LogFields{"job_id": jobID})
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}
}

// Close releases the publisher and subscriber.
func (q *Queue) Close() error {
	pubErr := q.publisher.Close()
	subErr := q.subscriber.Close()
	if pubErr != nil {
		return fmt.Errorf("close publisher: %w", pubErr)
	}
	if subErr != nil {
		return fmt.Errorf("close subscriber: %w", subErr)
	}
	return nil
}
