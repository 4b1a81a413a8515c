package resource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/hilthontt/powersite/internal/domain"
	"github.com/hilthontt/powersite/internal/infrastructure/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engine serves one record type described by a Definition.
type Engine[T any, PT interface {
	*T
	domain.Record
}] struct {
	def     Definition[T]
	db      *gorm.DB
	fields  *fieldSet
	filters map[string]bool
	queries map[string]NamedQuery
	actions map[string]map[string]any
	deletes map[string]bool
	opts    options
}

func New[T any, PT interface {
	*T
	domain.Record
}](db *gorm.DB, def Definition[T], opts ...Option) (*Engine[T, PT], error) {
	if def.Name == "" || def.New == nil {
		return nil, errors.New("definition needs a name and a constructor")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fields, err := parseFields(db, def.New(), def.ReadOnly, def.ServerControlled)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.Name, err)
	}

	e := &Engine[T, PT]{
		def:     def,
		db:      db,
		fields:  fields,
		filters: toSet(append([]string{"is_active"}, def.Filters...)),
		queries: make(map[string]NamedQuery, len(def.Queries)),
		actions: make(map[string]map[string]any, len(def.Actions)),
		deletes: make(map[string]bool),
		opts:    o,
	}

	for _, name := range stored(def.Ordering, def.Unique, def.Filters, def.Search) {
		if _, ok := fields.column(name); !ok {
			return nil, fmt.Errorf("%s: %q is not a stored field", def.Name, name)
		}
	}
	for _, ref := range def.References {
		if _, ok := fields.column(ref.Field); !ok {
			return nil, fmt.Errorf("%s: reference %q is not a stored field", def.Name, ref.Field)
		}
	}

	for _, q := range def.Queries {
		e.queries[q.Name] = q
	}

	for _, action := range def.Actions {
		if action.Delete {
			e.deletes[action.Name] = true
			continue
		}
		assign := make(map[string]any, len(action.Assign))
		for name, value := range action.Assign {
			col, ok := fields.column(name)
			if !ok {
				return nil, fmt.Errorf("%s: action %q assigns unknown field %q", def.Name, action.Name, name)
			}
			assign[col] = value
		}
		e.actions[action.Name] = assign
	}

	return e, nil
}

func (e *Engine[T, PT]) Name() string {
	return e.def.Name
}

// List returns one page of records. Public callers only see active records.
func (e *Engine[T, PT]) List(ctx context.Context, caller domain.Caller, q Query) (page Page[T], err error) {
	ctx, span := e.startSpan(ctx, "List", caller)
	defer func() { endSpan(span, err) }()

	if err = e.authorize(caller, OpList); err != nil {
		return page, err
	}

	scope, err := e.listScope(caller, q)
	if err != nil {
		return page, err
	}
	order, err := e.orderScope(q.Ordering)
	if err != nil {
		return page, err
	}

	var count int64
	if err = e.db.WithContext(ctx).Model(new(T)).Scopes(scope).Count(&count).Error; err != nil {
		return page, fmt.Errorf("failed to count %s: %w", e.def.Name, err)
	}

	size := e.opts.pageSize
	last := lastPage(count, size)
	number := q.Page
	if number == -1 {
		number = last
	}
	if number < 1 {
		number = 1
	}
	if number > last {
		return page, ErrInvalidPage
	}

	results := make([]T, 0, size)
	err = e.db.WithContext(ctx).
		Scopes(scope, e.preload, order).
		Limit(size).
		Offset((number - 1) * size).
		Find(&results).Error
	if err != nil {
		return page, fmt.Errorf("failed to list %s: %w", e.def.Name, err)
	}

	span.SetAttributes(attribute.Int64("resource.count", count), attribute.Int("resource.page", number))

	return Page[T]{Count: count, Number: number, Size: size, Results: results}, nil
}

// Get returns one record. Absent and invisible records are reported the
// same way.
func (e *Engine[T, PT]) Get(ctx context.Context, caller domain.Caller, id uint) (rec *T, err error) {
	ctx, span := e.startSpan(ctx, "Get", caller)
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.Int64("resource.id", int64(id)))

	if err = e.authorize(caller, OpRetrieve); err != nil {
		return nil, err
	}

	return e.find(ctx, e.db, id, !caller.Privileged, true)
}

// Create decodes payload over the type's defaults, validates it and inserts
// it in one transaction.
func (e *Engine[T, PT]) Create(ctx context.Context, caller domain.Caller, payload []byte) (rec *T, err error) {
	ctx, span := e.startSpan(ctx, "Create", caller)
	defer func() { endSpan(span, err) }()

	if err = e.authorize(caller, OpCreate); err != nil {
		return nil, err
	}

	values, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}
	if err = e.fields.checkWritable(values, caller); err != nil {
		return nil, err
	}

	rec = e.def.New()
	if err = e.fields.apply(ctx, rec, values); err != nil {
		return nil, err
	}
	if err = e.opts.validator.Struct(rec); err != nil {
		return nil, err
	}

	base := PT(rec).RecordBase()
	base.ID = 0
	base.Stamp(e.opts.now())

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := e.checkReferences(ctx, tx, rec, nil); err != nil {
			return err
		}
		if err := e.checkUnique(ctx, tx, rec, 0, nil); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(rec).Error
	})
	if err != nil {
		return nil, e.translate("create", err)
	}

	span.SetAttributes(attribute.Int64("resource.id", int64(base.ID)))
	e.opts.logger.Info(logging.Resource, logging.Insert, "record created", map[logging.ExtraKey]any{
		logging.ResourceName: e.def.Name,
		logging.Subject:      caller.Subject,
		"ID":                 base.ID,
	})

	return e.find(ctx, e.db, base.ID, false, true)
}

// Update changes only the supplied fields and refreshes updated_at.
func (e *Engine[T, PT]) Update(ctx context.Context, caller domain.Caller, id uint, payload []byte) (rec *T, err error) {
	ctx, span := e.startSpan(ctx, "Update", caller)
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.Int64("resource.id", int64(id)))

	if err = e.authorize(caller, OpUpdate); err != nil {
		return nil, err
	}

	values, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}
	if err = e.fields.checkWritable(values, caller); err != nil {
		return nil, err
	}

	touched := make(map[string]bool, len(values))
	for key := range values {
		touched[key] = true
	}

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := e.find(ctx, tx, id, false, false)
		if err != nil {
			return err
		}
		if err := e.fields.apply(ctx, current, values); err != nil {
			return err
		}
		if err := e.opts.validator.Struct(current); err != nil {
			return err
		}
		if err := e.checkReferences(ctx, tx, current, touched); err != nil {
			return err
		}
		if err := e.checkUnique(ctx, tx, current, id, touched); err != nil {
			return err
		}

		PT(current).RecordBase().UpdatedAt = e.opts.now()

		cols := append(e.fields.columns(values), "updated_at")
		return tx.Model(current).Select(cols).Omit(clause.Associations).Updates(current).Error
	})
	if err != nil {
		return nil, e.translate("update", err)
	}

	e.opts.logger.Info(logging.Resource, logging.Update, "record updated", map[logging.ExtraKey]any{
		logging.ResourceName: e.def.Name,
		logging.Subject:      caller.Subject,
		"ID":                 id,
	})

	return e.find(ctx, e.db, id, false, true)
}

// Delete physically removes a record. Dependents follow the foreign key
// policy of their table.
func (e *Engine[T, PT]) Delete(ctx context.Context, caller domain.Caller, id uint) (err error) {
	ctx, span := e.startSpan(ctx, "Delete", caller)
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.Int64("resource.id", int64(id)))

	if err = e.authorize(caller, OpDelete); err != nil {
		return err
	}

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(new(T), id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &domain.NotFoundError{Resource: e.def.Name}
		}
		return nil
	})
	if err != nil {
		return e.translate("delete", err)
	}

	e.opts.logger.Info(logging.Resource, logging.Delete, "record deleted", map[logging.ExtraKey]any{
		logging.ResourceName: e.def.Name,
		logging.Subject:      caller.Subject,
		"ID":                 id,
	})
	return nil
}

// NamedQuery runs one of the definition's predefined views.
func (e *Engine[T, PT]) NamedQuery(ctx context.Context, caller domain.Caller, name string, params url.Values) (results []T, err error) {
	ctx, span := e.startSpan(ctx, "NamedQuery", caller)
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("resource.query", name))

	if err = e.authorize(caller, OpQuery); err != nil {
		return nil, err
	}

	nq, ok := e.queries[name]
	if !ok {
		return nil, &domain.NotFoundError{Resource: e.def.Name}
	}
	if nq.Access == Staff && !caller.Privileged {
		return nil, &domain.PermissionError{Operation: name, Resource: e.def.Name}
	}

	verr := domain.NewValidationError()
	for _, p := range nq.Params {
		if strings.TrimSpace(params.Get(p)) == "" {
			verr.Add(p, "This field is required.")
		}
	}
	if err = verr.OrNil(); err != nil {
		return nil, err
	}

	db := e.db.WithContext(ctx).Scopes(e.preload)
	if !caller.Privileged {
		db = db.Where("is_active = ?", true)
	}
	if nq.Scope != nil {
		if db, err = nq.Scope(db, params); err != nil {
			return nil, err
		}
	}

	order, err := e.orderScope(nq.Ordering)
	if err != nil {
		return nil, err
	}
	db = db.Scopes(order)
	if nq.Limit > 0 {
		db = db.Limit(nq.Limit)
	}

	results = make([]T, 0)
	if err = db.Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to run %s/%s: %w", e.def.Name, name, err)
	}
	return results, nil
}

// BulkAction applies a named transition to every record in ids with a
// single statement and reports how many rows it touched.
func (e *Engine[T, PT]) BulkAction(ctx context.Context, caller domain.Caller, name string, ids []uint) (count int64, err error) {
	ctx, span := e.startSpan(ctx, "BulkAction", caller)
	defer func() { endSpan(span, err) }()

	span.SetAttributes(attribute.String("resource.action", name), attribute.Int("resource.ids", len(ids)))

	if err = e.authorize(caller, OpAction); err != nil {
		return 0, err
	}

	assign, isUpdate := e.actions[name]
	isDelete := e.deletes[name]
	if !isUpdate && !isDelete {
		return 0, &domain.NotFoundError{Resource: e.def.Name, Detail: fmt.Sprintf("Unknown action %q.", name)}
	}
	if isDelete {
		if err = e.authorize(caller, OpDelete); err != nil {
			return 0, err
		}
	}
	if len(ids) == 0 {
		return 0, domain.FieldError("ids", "This list may not be empty.")
	}

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res *gorm.DB
		if isDelete {
			res = tx.Where("id IN ?", ids).Delete(new(T))
		} else {
			values := make(map[string]any, len(assign)+1)
			for col, v := range assign {
				values[col] = v
			}
			values["updated_at"] = e.opts.now()
			res = tx.Model(new(T)).Where("id IN ?", ids).Updates(values)
		}
		if res.Error != nil {
			return res.Error
		}
		count = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, e.translate(name, err)
	}

	span.SetAttributes(attribute.Int64("resource.affected", count))
	e.opts.logger.Info(logging.Resource, logging.BulkAction, "bulk action applied", map[logging.ExtraKey]any{
		logging.ResourceName: e.def.Name,
		logging.Subject:      caller.Subject,
		logging.RowsAffected: count,
		"Action":             name,
	})

	return count, nil
}

// Count counts every record matching filters, ignoring visibility.
func (e *Engine[T, PT]) Count(ctx context.Context, filters map[string]any) (int64, error) {
	q := e.db.WithContext(ctx).Model(new(T))
	for name, v := range filters {
		col, ok := e.fields.column(name)
		if !ok {
			return 0, fmt.Errorf("%s: cannot count by %q", e.def.Name, name)
		}
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: v})
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", e.def.Name, err)
	}
	return n, nil
}

// Descriptor describes the type for the admin console.
func (e *Engine[T, PT]) Descriptor() Descriptor {
	d := Descriptor{
		Name:             e.def.Name,
		Display:          e.def.Display,
		Ordering:         e.def.Ordering,
		Filters:          e.def.Filters,
		Search:           e.def.Search,
		ReadOnly:         e.fields.names(func(f *field) bool { return f.readOnly }),
		ServerControlled: e.def.ServerControlled,
		Access:           make(map[Operation]string),
	}
	for _, q := range e.def.Queries {
		d.Queries = append(d.Queries, q.Name)
	}
	for _, a := range e.def.Actions {
		d.Actions = append(d.Actions, a.Name)
	}
	for _, op := range []Operation{OpList, OpRetrieve, OpCreate, OpUpdate, OpDelete, OpAction, OpQuery} {
		d.Access[op] = e.def.access(op).String()
	}
	return d
}

func (e *Engine[T, PT]) authorize(caller domain.Caller, op Operation) error {
	if e.def.access(op) == Staff && !caller.Privileged {
		return &domain.PermissionError{Operation: string(op), Resource: e.def.Name}
	}
	return nil
}

func (e *Engine[T, PT]) find(ctx context.Context, db *gorm.DB, id uint, activeOnly, preload bool) (*T, error) {
	q := db.WithContext(ctx)
	if preload {
		q = q.Scopes(e.preload)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	rec := new(T)
	if err := q.Where("id = ?", id).Take(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Resource: e.def.Name}
		}
		return nil, fmt.Errorf("failed to get %s %d: %w", e.def.Name, id, err)
	}
	return rec, nil
}

func (e *Engine[T, PT]) preload(db *gorm.DB) *gorm.DB {
	for _, p := range e.def.Preloads {
		db = db.Preload(p)
	}
	return db
}

func (e *Engine[T, PT]) listScope(caller domain.Caller, q Query) (func(*gorm.DB) *gorm.DB, error) {
	var conds []clause.Expression
	if !caller.Privileged {
		conds = append(conds, clause.Eq{Column: clause.Column{Name: "is_active"}, Value: true})
	}

	verr := domain.NewValidationError()
	for name, raw := range q.Filters {
		if !e.filters[name] {
			verr.Add(name, "Filtering on this field is not supported.")
			continue
		}
		v, err := e.fields.filterValue(name, raw)
		if err != nil {
			verr.Add(name, "Enter a valid value.")
			continue
		}
		col, _ := e.fields.column(name)
		conds = append(conds, clause.Eq{Column: clause.Column{Name: col}, Value: v})
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if q.Search != "" && len(e.def.Search) > 0 {
		term := "%" + strings.ToLower(q.Search) + "%"
		ors := make([]clause.Expression, 0, len(e.def.Search))
		for _, name := range e.def.Search {
			col, _ := e.fields.column(name)
			ors = append(ors, clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []any{clause.Column{Name: col}, term}})
		}
		conds = append(conds, clause.Or(ors...))
	}

	return func(db *gorm.DB) *gorm.DB {
		for _, c := range conds {
			db = db.Where(c)
		}
		return db
	}, nil
}

// orderScope resolves terms, or the default ordering when terms is empty,
// and appends id ascending unless id is already part of it.
func (e *Engine[T, PT]) orderScope(terms []string) (func(*gorm.DB) *gorm.DB, error) {
	if len(terms) == 0 {
		terms = e.def.Ordering
	}

	verr := domain.NewValidationError()
	cols := make([]clause.OrderByColumn, 0, len(terms)+1)
	hasID := false
	for _, term := range terms {
		name := strings.TrimPrefix(term, "-")
		col, ok := e.fields.column(name)
		if !ok {
			verr.Add("ordering", fmt.Sprintf("Cannot order by %q.", name))
			continue
		}
		hasID = hasID || col == "id"
		cols = append(cols, clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: strings.HasPrefix(term, "-")})
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if !hasID {
		cols = append(cols, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderBy{Columns: cols})
	}, nil
}

// checkReferences verifies that every referenced row exists. When only is
// set, references outside it are skipped.
func (e *Engine[T, PT]) checkReferences(ctx context.Context, tx *gorm.DB, rec *T, only map[string]bool) error {
	verr := domain.NewValidationError()
	for _, ref := range e.def.References {
		if only != nil && !only[ref.Field] {
			continue
		}
		v, ok := nonZero(e.fields.value(ctx, rec, ref.Field))
		if !ok {
			continue
		}

		var n int64
		if err := tx.Model(ref.Model).Where("id = ?", v).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			verr.Add(ref.Field, fmt.Sprintf("Invalid pk \"%v\" - object does not exist.", v))
		}
	}
	return verr.OrNil()
}

// checkUnique looks for another row holding the same value in a unique
// field. The storage index still decides under concurrency.
func (e *Engine[T, PT]) checkUnique(ctx context.Context, tx *gorm.DB, rec *T, excludeID uint, only map[string]bool) error {
	for _, name := range e.def.Unique {
		if only != nil && !only[name] {
			continue
		}
		col, _ := e.fields.column(name)
		v := e.fields.value(ctx, rec, name)

		q := tx.Model(new(T)).Where(clause.Eq{Column: clause.Column{Name: col}, Value: v})
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}

		var n int64
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return &domain.ConflictError{Resource: e.label(), Field: name, Value: v}
		}
	}
	return nil
}

// translate maps storage constraint errors onto domain errors.
func (e *Engine[T, PT]) translate(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrPermissionDenied):
		return err
	case errors.Is(err, gorm.ErrDuplicatedKey):
		field := ""
		if len(e.def.Unique) > 0 {
			field = e.def.Unique[0]
		}
		return &domain.ConflictError{Resource: e.label(), Field: field}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		if len(e.def.References) > 0 {
			return domain.FieldError(e.def.References[0].Field, "Invalid pk - object does not exist.")
		}
		return domain.FieldError("non_field_errors", "Referenced object does not exist.")
	}
	return fmt.Errorf("failed to %s %s: %w", op, e.def.Name, err)
}

func (e *Engine[T, PT]) label() string {
	if e.def.Display.Label != "" {
		return strings.ToLower(e.def.Display.Label)
	}
	return e.def.Name
}

func (e *Engine[T, PT]) startSpan(ctx context.Context, op string, caller domain.Caller) (context.Context, trace.Span) {
	ctx, span := e.opts.tracer.Start(ctx, e.def.Name+"."+op)
	span.SetAttributes(
		attribute.String("resource.name", e.def.Name),
		attribute.Bool("caller.privileged", caller.Privileged),
	)
	return ctx, span
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func nonZero(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.IsZero() {
		return nil, false
	}
	return rv.Interface(), true
}

func stored(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		for _, term := range g {
			out = append(out, strings.TrimPrefix(term, "-"))
		}
	}
	return out
}
