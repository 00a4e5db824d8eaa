package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesclean/internal/records"
)

func TestCanonicalName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Product Name", "product_name"},
		{"  Price ", "price"},
		{"QUANTITY", "quantity"},
		{"Order  Date", "order__date"},
		{"unit-price ($)", "unit-price_($)"},
		{"\tCategory\n", "category"},
		{"already_canonical", "already_canonical"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CanonicalName(tc.in), "CanonicalName(%q)", tc.in)
	}
}

/*
TestNormalizeApply_TableDriven verifies the re-keying contract:

  - Every key is replaced by its canonical form, in the original key order.
  - Row count, row order, and values are preserved.
  - Colliding names keep the later value at the first position.
*/
func TestNormalizeApply_TableDriven(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   records.Dataset
		want records.Dataset
	}{
		{
			name: "rekey_preserves_order_and_values",
			in: records.Dataset{
				records.FromPairs("Product Name", " Widget ", "Price", "", "Quantity", "5"),
				records.FromPairs("Product Name", "Gadget", "Price", "1", "Quantity", "2"),
			},
			want: records.Dataset{
				records.FromPairs("product_name", " Widget ", "price", "", "quantity", "5"),
				records.FromPairs("product_name", "Gadget", "price", "1", "quantity", "2"),
			},
		},
		{
			name: "collision_last_write_wins",
			in: records.Dataset{
				records.FromPairs("Price ", "1.00", "Name", "x", "price", "2.00"),
			},
			want: records.Dataset{
				records.FromPairs("price", "2.00", "name", "x"),
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize{}.Apply(tc.in)
			require.Len(t, got, len(tc.in))
			assert.True(t, tc.want.Equal(got))
		})
	}
}

func TestNormalizeApply_EmptyReturnedUnchanged(t *testing.T) {
	t.Parallel()

	var nilDS records.Dataset
	assert.Nil(t, Normalize{}.Apply(nilDS))

	empty := records.Dataset{}
	got := Normalize{}.Apply(empty)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeApply_Idempotent(t *testing.T) {
	t.Parallel()

	in := records.Dataset{
		records.FromPairs(" Product Name", "a", "Category", "b", "PRICE", "1"),
		records.FromPairs(" Product Name", "c", "Category", "d", "PRICE", "2"),
	}
	once := Normalize{}.Apply(in)
	twice := Normalize{}.Apply(once.Clone())

	assert.True(t, once.Equal(twice))
}

func TestNormalizeApply_PreservesLine(t *testing.T) {
	t.Parallel()

	r := records.FromPairs("A", "1")
	r.Line = 9
	got := Normalize{}.Apply(records.Dataset{r})
	assert.Equal(t, 9, got[0].Line)
}

func TestNormalizeApply_OnCollisionReported(t *testing.T) {
	t.Parallel()

	type call struct {
		canonical string
		originals []string
	}
	var calls []call
	n := Normalize{OnCollision: func(c string, orig []string) {
		calls = append(calls, call{c, orig})
	}}

	in := records.Dataset{
		records.FromPairs("B", "1", "Price ", "2", "b", "3", "price", "4", "Other", "5"),
		records.FromPairs("B", "6", "Price ", "7", "b", "8", "price", "9", "Other", "10"),
	}
	got := n.Apply(in)

	require.Equal(t, []call{
		{"b", []string{"B", "b"}},
		{"price", []string{"Price ", "price"}},
	}, calls)
	assert.Equal(t, []string{"b", "price", "other"}, got[0].Keys())
	assert.Equal(t, []string{"3", "4", "5"}, got[0].Values())
	assert.Equal(t, []string{"8", "9", "10"}, got[1].Values())
}

func TestCollisions(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Collisions([]string{"a", "b"}))
	assert.Equal(t,
		map[string][]string{"order_date": {"Order Date", "order_date"}},
		Collisions([]string{"Order Date", "x", "order_date"}),
	)
}
