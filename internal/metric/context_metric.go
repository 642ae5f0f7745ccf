// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package metric

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// ContextMetric defines the instruments recorded by a running actor context
type ContextMetric struct {
	// Specifies the total number of envelopes delivered to the actor
	processedCount metric.Int64Counter
	// Specifies the total number of envelopes discarded on shutdown
	discardedCount metric.Int64Counter
	// Specifies how long the actor took to handle a message, in milliseconds
	handleDuration metric.Int64Histogram
	// Specifies the number of envelopes waiting in the mailbox
	mailboxDepth metric.Int64ObservableGauge
	// Specifies the number of coroutines currently running on clones
	coroutineCount metric.Int64UpDownCounter
}

// NewContextMetric creates an instance of ContextMetric
func NewContextMetric(meter metric.Meter) (*ContextMetric, error) {
	contextMetric := new(ContextMetric)
	var err error

	if contextMetric.processedCount, err = meter.Int64Counter(
		"actor_processed_count",
		metric.WithDescription("Total number of messages processed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processedCount instrument, %w", err)
	}

	if contextMetric.discardedCount, err = meter.Int64Counter(
		"actor_discarded_count",
		metric.WithDescription("Total number of pending messages discarded on stop"),
	); err != nil {
		return nil, fmt.Errorf("failed to create discardedCount instrument, %w", err)
	}

	if contextMetric.handleDuration, err = meter.Int64Histogram(
		"actor_handle_duration",
		metric.WithDescription("The latency of message handling in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create handleDuration instrument, %w", err)
	}

	if contextMetric.mailboxDepth, err = meter.Int64ObservableGauge(
		"actor_mailbox_depth",
		metric.WithDescription("Number of messages waiting in the mailbox"),
	); err != nil {
		return nil, fmt.Errorf("failed to create mailboxDepth instrument, %w", err)
	}

	if contextMetric.coroutineCount, err = meter.Int64UpDownCounter(
		"actor_coroutine_count",
		metric.WithDescription("Number of coroutines running against actor clones"),
	); err != nil {
		return nil, fmt.Errorf("failed to create coroutineCount instrument, %w", err)
	}

	return contextMetric, nil
}

// ProcessedCount returns the processed messages counter
func (x *ContextMetric) ProcessedCount() metric.Int64Counter {
	return x.processedCount
}

// DiscardedCount returns the discarded messages counter
func (x *ContextMetric) DiscardedCount() metric.Int64Counter {
	return x.discardedCount
}

// HandleDuration returns the handling latency histogram
func (x *ContextMetric) HandleDuration() metric.Int64Histogram {
	return x.handleDuration
}

// MailboxDepth returns the mailbox depth gauge
func (x *ContextMetric) MailboxDepth() metric.Int64ObservableGauge {
	return x.mailboxDepth
}

// CoroutineCount returns the running coroutines counter
func (x *ContextMetric) CoroutineCount() metric.Int64UpDownCounter {
	return x.coroutineCount
}
