package engine

import (
	"testing"

	"gotest.tools/v3/assert"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// newUsersGroup returns a group with schema (id Int32, name Text) and the
// given rows inserted in order.
func newUsersGroup(t *testing.T, rows ...Row) *ColumnGroup {
	t.Helper()
	g := NewColumnGroup("users")
	assert.NilError(t, g.AddColumn(NewColumn("id", Zero(KindInt32))))
	assert.NilError(t, g.AddColumn(NewColumn("name", Zero(KindText))))
	for _, r := range rows {
		assert.NilError(t, g.InsertRow(r))
	}
	return g
}

func assertRow(t *testing.T, got, want Row) {
	t.Helper()
	assert.Assert(t, got.Equal(want), "got %#v, want %#v", got, want)
}

// =============================================================================
// SCHEMA
// =============================================================================

func TestAddColumn(t *testing.T) {
	t.Run("AppendsInOrder", func(t *testing.T) {
		g := newUsersGroup(t)
		cols := g.Columns()
		assert.Equal(t, len(cols), 2)
		assert.Equal(t, cols[0].Name, "id")
		assert.Equal(t, cols[1].Name, "name")
		assert.Equal(t, cols[0].Kind(), KindInt32)
	})

	t.Run("RejectsExactPair", func(t *testing.T) {
		g := newUsersGroup(t)
		err := g.AddColumn(NewColumn("id", Int32(0)))
		assert.ErrorIs(t, err, ErrInsert)
		assert.Equal(t, g.NumColumns(), 2)
	})

	t.Run("AcceptsSameNameDifferentPrototype", func(t *testing.T) {
		g := newUsersGroup(t)
		assert.NilError(t, g.AddColumn(NewColumn("id", Zero(KindText))))
		assert.Equal(t, g.NumColumns(), 3)

		// Lookups by name resolve to the first "id".
		idx, ok := g.ColumnIndex("id")
		assert.Assert(t, ok)
		assert.Equal(t, idx, 0)
	})

	t.Run("PrototypePayloadIsPartOfThePair", func(t *testing.T) {
		g := NewColumnGroup("g")
		assert.NilError(t, g.AddColumn(NewColumn("n", Int32(1))))
		assert.NilError(t, g.AddColumn(NewColumn("n", Int32(2))))
		assert.ErrorIs(t, g.AddColumn(NewColumn("n", Int32(2))), ErrInsert)
	})
}

func TestSchemaGrowthDoesNotRevalidateRows(t *testing.T) {
	g := newUsersGroup(t, Row{Int32(1), Text("a")})
	assert.NilError(t, g.AddColumn(NewColumn("active", Zero(KindBool))))

	// The old row keeps its original length.
	assert.Equal(t, len(g.Row(0)), 2)

	// New rows must match the grown schema.
	assert.ErrorIs(t, g.InsertRow(Row{Int32(2), Text("b")}), ErrInsert)
	assert.NilError(t, g.InsertRow(Row{Int32(2), Text("b"), Bool(true)}))

	vals, err := g.GetColumn("active")
	assert.NilError(t, err)
	assert.Equal(t, len(vals), 1)
	assert.Equal(t, vals[0], Bool(true))
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidateRow(t *testing.T) {
	g := newUsersGroup(t)

	tests := []struct {
		name    string
		row     Row
		wantErr bool
	}{
		{"Matching", Row{Int32(9), Text("x")}, false},
		{"PayloadIgnored", Row{Int32(-1), Text("")}, false},
		{"TooShort", Row{Int32(1)}, true},
		{"TooLong", Row{Int32(1), Text("a"), Text("b")}, true},
		{"Empty", Row{}, true},
		{"WrongKindFirst", Row{Int64(1), Text("a")}, true},
		{"WrongKindSecond", Row{Int32(1), Bool(true)}, true},
		{"Swapped", Row{Text("a"), Int32(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.ValidateRow(tt.row)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInsert)
				assert.Equal(t, KindOf(err), KindInsertError)
			} else {
				assert.NilError(t, err)
			}
		})
	}
}

func TestInsertRowFailureLeavesStoreUnchanged(t *testing.T) {
	g := newUsersGroup(t, Row{Int32(1), Text("a")})

	err := g.InsertRow(Row{Text("bad"), Text("a")})
	assert.ErrorIs(t, err, ErrInsert)
	assert.Equal(t, g.NumRows(), 1)
	assertRow(t, g.Row(0), Row{Int32(1), Text("a")})
}

func TestInsertRowCopiesInput(t *testing.T) {
	g := newUsersGroup(t)
	row := Row{Int32(1), Text("a")}
	assert.NilError(t, g.InsertRow(row))

	row[1] = Text("mutated")
	assertRow(t, g.Row(0), Row{Int32(1), Text("a")})

	out := g.Row(0)
	out[1] = Text("mutated")
	assertRow(t, g.Row(0), Row{Int32(1), Text("a")})
}

// =============================================================================
// CRUD
// =============================================================================

func TestRowLifecycle(t *testing.T) {
	g := newUsersGroup(t,
		Row{Int32(1), Text("a")},
		Row{Int32(2), Text("b")},
	)

	row, err := g.SearchRow("name", Text("b"))
	assert.NilError(t, err)
	assertRow(t, row, Row{Int32(2), Text("b")})

	assert.NilError(t, g.UpdateRow("id", Int32(1), Row{Int32(1), Text("c")}))
	assertRow(t, g.Row(0), Row{Int32(1), Text("c")})

	assert.NilError(t, g.DeleteRow("id", Int32(2)))
	assert.Equal(t, g.NumRows(), 1)

	_, err = g.SearchRow("id", Int32(2))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFirstMatchConsistency(t *testing.T) {
	build := func(t *testing.T) *ColumnGroup {
		return newUsersGroup(t,
			Row{Int32(1), Text("dup")},
			Row{Int32(2), Text("dup")},
			Row{Int32(3), Text("dup")},
		)
	}

	t.Run("Search", func(t *testing.T) {
		row, err := build(t).SearchRow("name", Text("dup"))
		assert.NilError(t, err)
		assertRow(t, row, Row{Int32(1), Text("dup")})
	})

	t.Run("Update", func(t *testing.T) {
		g := build(t)
		assert.NilError(t, g.UpdateRow("name", Text("dup"), Row{Int32(10), Text("new")}))
		assertRow(t, g.Row(0), Row{Int32(10), Text("new")})
		assertRow(t, g.Row(1), Row{Int32(2), Text("dup")})
	})

	t.Run("Delete", func(t *testing.T) {
		g := build(t)
		assert.NilError(t, g.DeleteRow("name", Text("dup")))
		assert.Equal(t, g.NumRows(), 2)
		assertRow(t, g.Row(0), Row{Int32(2), Text("dup")})
		assertRow(t, g.Row(1), Row{Int32(3), Text("dup")})
	})
}

func TestMatchUsesFullEquality(t *testing.T) {
	g := NewColumnGroup("nums")
	assert.NilError(t, g.AddColumn(NewColumn("n", Zero(KindInt32))))
	assert.NilError(t, g.InsertRow(Row{Int32(5)}))

	// Same payload, different kind: no match.
	_, err := g.SearchRow("n", Int64(5))
	assert.ErrorIs(t, err, ErrNoData)

	// Same kind, different payload: no match.
	_, err = g.SearchRow("n", Int32(6))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestUpdateRowErrors(t *testing.T) {
	t.Run("UnknownColumn", func(t *testing.T) {
		g := newUsersGroup(t, Row{Int32(1), Text("a")})
		err := g.UpdateRow("missing", Int32(1), Row{Int32(1), Text("z")})
		assert.ErrorIs(t, err, ErrSelect)
	})

	t.Run("NoMatch", func(t *testing.T) {
		g := newUsersGroup(t, Row{Int32(1), Text("a")})
		err := g.UpdateRow("id", Int32(7), Row{Int32(7), Text("z")})
		assert.ErrorIs(t, err, ErrUpdate)
	})

	t.Run("InvalidReplacementKeepsRow", func(t *testing.T) {
		g := newUsersGroup(t, Row{Int32(1), Text("a")})
		err := g.UpdateRow("id", Int32(1), Row{Int32(1)})
		assert.ErrorIs(t, err, ErrInsert)
		assertRow(t, g.Row(0), Row{Int32(1), Text("a")})
	})
}

func TestDeleteRowErrors(t *testing.T) {
	g := newUsersGroup(t, Row{Int32(1), Text("a")})

	assert.ErrorIs(t, g.DeleteRow("missing", Int32(1)), ErrSelect)
	assert.ErrorIs(t, g.DeleteRow("id", Int32(9)), ErrDelete)
	assert.Equal(t, g.NumRows(), 1)
}

func TestDeleteRowKeepsOrder(t *testing.T) {
	g := newUsersGroup(t,
		Row{Int32(1), Text("a")},
		Row{Int32(2), Text("b")},
		Row{Int32(3), Text("c")},
		Row{Int32(4), Text("d")},
	)
	assert.NilError(t, g.DeleteRow("id", Int32(2)))

	ids, err := g.GetColumn("id")
	assert.NilError(t, err)
	assert.Equal(t, len(ids), 3)
	assert.Equal(t, ids[0], Int32(1))
	assert.Equal(t, ids[1], Int32(3))
	assert.Equal(t, ids[2], Int32(4))
}

func TestSearchRowUnknownColumn(t *testing.T) {
	g := newUsersGroup(t)
	_, err := g.SearchRow("missing", Text("a"))
	assert.ErrorIs(t, err, ErrSelect)
}

func TestGetColumn(t *testing.T) {
	g := newUsersGroup(t,
		Row{Int32(1), Text("a")},
		Row{Int32(2), Text("b")},
	)

	names, err := g.GetColumn("name")
	assert.NilError(t, err)
	assert.Equal(t, len(names), 2)
	assert.Equal(t, names[0], Text("a"))
	assert.Equal(t, names[1], Text("b"))

	_, err = g.GetColumn("missing")
	assert.ErrorIs(t, err, ErrSelect)

	empty, err := newUsersGroup(t).GetColumn("id")
	assert.NilError(t, err)
	assert.Equal(t, len(empty), 0)
}

// =============================================================================
// INDEX ACCESS
// =============================================================================

func TestIndexAccess(t *testing.T) {
	g := newUsersGroup(t, Row{Int32(1), Text("a")})

	row, err := g.SearchRowAt(0)
	assert.NilError(t, err)
	assertRow(t, row, Row{Int32(1), Text("a")})

	_, err = g.SearchRowAt(1)
	assert.ErrorIs(t, err, ErrSelect)
	_, err = g.SearchRowAt(-1)
	assert.ErrorIs(t, err, ErrSelect)

	assert.NilError(t, g.UpdateRowAt(0, Row{Int32(1), Text("b")}))
	assertRow(t, g.Row(0), Row{Int32(1), Text("b")})

	assert.ErrorIs(t, g.UpdateRowAt(3, Row{Int32(1), Text("b")}), ErrUpdate)
	assert.ErrorIs(t, g.UpdateRowAt(0, Row{Text("b"), Text("b")}), ErrInsert)
	assertRow(t, g.Row(0), Row{Int32(1), Text("b")})
}

func TestRowOutOfRangePanics(t *testing.T) {
	g := newUsersGroup(t)
	defer func() {
		assert.Assert(t, recover() != nil, "expected panic for out-of-range row")
	}()
	g.Row(0)
}

func TestColumnGroupClone(t *testing.T) {
	g := newUsersGroup(t, Row{Int32(1), Text("a")})
	c := g.Clone()

	assert.NilError(t, c.InsertRow(Row{Int32(2), Text("b")}))
	assert.NilError(t, c.AddColumn(NewColumn("extra", Zero(KindBool))))

	assert.Equal(t, g.NumRows(), 1)
	assert.Equal(t, g.NumColumns(), 2)
	assert.Equal(t, c.Name(), "users")
}
