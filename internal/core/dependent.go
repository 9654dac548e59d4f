package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

// rowStatus is the final state of one students/faculty row.
type rowStatus int

const (
	rowNotRun rowStatus = iota // batch aborted before the row started
	rowImported
	rowSkipped
	rowFailed
)

// dependentImporter creates an account and then a profile for every row.
//
// Rows run on a worker pool of env.workers goroutines. An account failure
// skips its row. A profile failure aborts the batch: rows already started
// finish, rows not yet started never run.
type dependentImporter[P any] struct {
	refs      []Category
	role      Role
	password  string
	keyColumn string
	build     func(row RawRow, accountID uuid.UUID, lk Lookups) P
	save      func(ctx context.Context, w RecordWriter, p P) error
}

func (d dependentImporter[P]) references() []Category { return d.refs }

func (d dependentImporter[P]) run(ctx context.Context, env *batchEnv, rows []RawRow) (batchOutcome, error) {
	statuses := make([]rowStatus, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(env.workers)

	for i, row := range rows {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			st, err := d.processRow(gctx, env, i+1, row)
			statuses[i] = st
			return err
		})
	}
	err := g.Wait()

	var out batchOutcome
	for _, st := range statuses {
		switch st {
		case rowImported:
			out.imported++
		case rowSkipped:
			out.skipped++
		}
	}
	return out, err
}

func (d dependentImporter[P]) processRow(ctx context.Context, env *batchEnv, rowNum int, row RawRow) (rowStatus, error) {
	key := row.Get(d.keyColumn)

	accountID, err := d.createAccount(ctx, env, rowNum, row)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return rowNotRun, ctxErr
		}
		env.log.Warn("row skipped",
			"row", rowNum,
			"key", key,
			"error", &DependentCreationError{Row: rowNum, Key: key, Err: err},
		)
		return rowSkipped, nil
	}

	p := d.build(row, accountID, env.lookups)
	if err := env.validate.Struct(p); err != nil {
		return rowFailed, &ProfileCreationError{Row: rowNum, Key: key, Err: newStructuralError(rowNum, err)}
	}
	if err := d.save(ctx, env.store, p); err != nil {
		return rowFailed, &ProfileCreationError{Row: rowNum, Key: key, Err: err}
	}

	return rowImported, nil
}

// createAccount validates, hashes and stores the account half of a row.
func (d dependentImporter[P]) createAccount(ctx context.Context, env *batchEnv, rowNum int, row RawRow) (uuid.UUID, error) {
	acct := AccountRecord{
		DisplayName: joinNonEmpty(row.Get(colFirstName), row.Get(colLastName)),
		Email:       row.Get(colEmail),
		Phone:       row.Get(colPhone),
		Role:        d.role,
		Password:    d.password,
		Active:      true,
	}
	if err := env.validate.Struct(acct); err != nil {
		return uuid.Nil, newStructuralError(rowNum, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(acct.Password), env.bcryptCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}
	acct.PasswordHash = hash
	acct.Password = ""

	return env.store.CreateAccount(ctx, acct)
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
