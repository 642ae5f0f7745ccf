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

package actor

import "context"

// Spawn runs actor on a new Context built with opts and returns its Address.
func Spawn[A Actor](ctx context.Context, actor A, opts ...Option) (*Address[A], error) {
	c, err := NewContext[A](opts...)
	if err != nil {
		return nil, err
	}
	return c.Spawn(ctx, actor)
}

// CreateAndSpawn builds the actor with access to its Context, so that it can
// capture its own Address for instance, then spawns it.
func CreateAndSpawn[A Actor](ctx context.Context, create func(c *Context[A]) A, opts ...Option) (*Address[A], error) {
	c, err := NewContext[A](opts...)
	if err != nil {
		return nil, err
	}
	return c.Spawn(ctx, create(c))
}

// Run runs actor on a new Context built with opts and blocks until it stops.
func Run[A Actor](ctx context.Context, actor A, opts ...Option) error {
	c, err := NewContext[A](opts...)
	if err != nil {
		return err
	}
	return c.Run(ctx, actor)
}

// CreateAndRun builds the actor with access to its Context, then runs it
// until it stops.
func CreateAndRun[A Actor](ctx context.Context, create func(c *Context[A]) A, opts ...Option) error {
	c, err := NewContext[A](opts...)
	if err != nil {
		return err
	}
	return c.Run(ctx, create(c))
}
