package marquee

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugOut receives debug-mode stats and warnings.
var debugOut io.Writer = os.Stderr

const (
	debugMaxTreeDepth  = 32
	debugMaxChildCount = 1000
)

// debugStats is one frame's timings plus how much orchestration is live.
// Filled only in debug mode.
type debugStats struct {
	updateTime, drawTime time.Duration

	nodes         int
	timers        int
	subscriptions int
	transitions   int
}

func (st debugStats) write(w io.Writer) {
	fmt.Fprintf(w, "[marquee] update: %v | draw: %v | total: %v\n",
		st.updateTime, st.drawTime, st.updateTime+st.drawTime)
	fmt.Fprintf(w, "[marquee] nodes: %d | timers: %d | subscriptions: %d | transitions: %d\n",
		st.nodes, st.timers, st.subscriptions, st.transitions)
}

func (s *Scene) debugLog(st debugStats) {
	if s.debug {
		st.write(debugOut)
	}
}

func debugWarn(format string, args ...any) {
	fmt.Fprintf(debugOut, "[marquee] warning: "+format+"\n", args...)
}

// debugCheckDisposed panics when a tree operation touches a disposed node.
// A section's nodes must not be reused after its teardown.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("marquee debug: %s on disposed node %q", op, n.Name))
	}
}

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugWarn("tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugWarn("node %q has %d children (threshold %d)", n.Name, len(n.children), debugMaxChildCount)
	}
}

// countNodes returns the size of n's subtree, n included.
func countNodes(n *Node) int {
	total := 1
	for _, child := range n.children {
		total += countNodes(child)
	}
	return total
}
