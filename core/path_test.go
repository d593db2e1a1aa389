package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quaverflow/deepdelta/core"
)

// TestPathBuilder_DotAndBracketSegments verifies the rendered form of
// member, index, and key segments.
func TestPathBuilder_DotAndBracketSegments(t *testing.T) {
	pb := core.NewPathBuilder()

	pb.PushMember("Customer")
	pb.PushMember("Address")
	pb.PushMember("Street")
	assert.Equal(t, "Customer.Address.Street", pb.String(), "members join with dots")

	pb.Reset()
	pb.PushMember("People")
	pb.PushIndex(3)
	pb.PushMember("Name")
	assert.Equal(t, "People[3].Name", pb.String(), "indices render bracketed")

	pb.Reset()
	pb.PushMember("Attributes")
	pb.PushKey("env")
	assert.Equal(t, "Attributes[env]", pb.String(), "string keys render raw")
}

// TestPathBuilder_PopRestoresPreviousSegment verifies push/pop symmetry.
func TestPathBuilder_PopRestoresPreviousSegment(t *testing.T) {
	pb := core.NewPathBuilder()
	pb.PushMember("Order")
	pb.PushMember("Items")
	pb.PushIndex(2)

	pb.Pop()
	assert.Equal(t, "Order.Items", pb.String(), "Pop removes the index segment")
	pb.Pop()
	assert.Equal(t, "Order", pb.String(), "Pop removes the member segment")
	pb.Pop()
	assert.Equal(t, "", pb.String(), "Pop drains to empty")
	pb.Pop() // popping empty must be a no-op
	assert.Equal(t, "", pb.String(), "Pop on empty is a no-op")
}

// TestPathBuilder_KeyKinds verifies scalar key rendering.
func TestPathBuilder_KeyKinds(t *testing.T) {
	pb := core.NewPathBuilder()
	pb.PushMember("M")
	pb.PushKey(int64(-7))
	assert.Equal(t, "M[-7]", pb.String(), "int64 keys")

	pb.Pop()
	pb.PushKey(uint64(9))
	assert.Equal(t, "M[9]", pb.String(), "uint64 keys")

	pb.Pop()
	pb.PushKey(true)
	assert.Equal(t, "M[true]", pb.String(), "bool keys")
}

// TestPathBuilder_DeepNestingSpillsAndRecovers pushes past both the inline
// byte buffer and the inline mark stack, then pops everything back.
func TestPathBuilder_DeepNestingSpillsAndRecovers(t *testing.T) {
	pb := core.NewPathBuilder()
	const depth = 100
	for i := 0; i < depth; i++ {
		pb.PushMember("Segment")
	}
	require.Equal(t, depth, pb.Depth(), "all segments pushed")
	require.True(t, pb.Len() > 256, "path outgrew the inline buffer")
	assert.Equal(t, depth-1, strings.Count(pb.String(), "."), "one dot per join")

	for i := 0; i < depth; i++ {
		pb.Pop()
	}
	assert.Equal(t, "", pb.String(), "fully popped")
	assert.Equal(t, 0, pb.Depth(), "depth drained")
}
