/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/gntenant/internal/iodb"
	"github.com/gnames/gntenant/pkg/db"
	"github.com/gnames/gntenant/pkg/errcode"
	"github.com/gnames/gntenant/pkg/tenant"
)

type sessionFunc func(ctx context.Context, op db.Operator, sess db.Session) error

// withSession connects to the configured database, pins one session and
// runs fn with it. A session with an unknown search_path is discarded
// instead of being returned to the pool.
func withSession(ctx context.Context, fn sessionFunc) error {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	sess, err := op.Acquire(ctx)
	if err != nil {
		return err
	}

	err = fn(ctx, op, sess)
	if errcode.Is(err, errcode.ScopeRestoreFailedError) {
		_ = sess.Discard()
		return err
	}
	if rerr := sess.Release(); rerr != nil && err == nil {
		err = rerr
	}
	return err
}

// parseNames validates schema names given as arguments.
func parseNames(args []string) ([]tenant.Name, error) {
	res := make([]tenant.Name, 0, len(args))
	for _, v := range args {
		name, err := tenant.ParseName(v)
		if err != nil {
			return nil, err
		}
		res = append(res, name)
	}
	return res, nil
}
