/*
 * Copyright 2025 SREDiag Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package engine

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	old := level
	defer SetLogLevel(old)

	SetLogLevel(levelTrace)
	assert.Equal(t, levelTrace, level)
	SetLogLevel(levelNoPrint + 1)
	assert.Equal(t, levelTrace, level)
}

// TestDebugModeDumpsStuckTransfers covers the DMABUF_DEBUG_MODE path: with
// the switch on, a close that times out lists the transfers still in flight.
func TestDebugModeDumpsStuckTransfers(t *testing.T) {
	var buf bytes.Buffer
	oldOut, oldLevel, oldDebug := internalLogger.out, level, debugMode
	internalLogger.out = &buf
	level = levelError
	debugMode = true
	defer func() {
		internalLogger.out = oldOut
		level = oldLevel
		debugMode = oldDebug
	}()

	e, err := New(nil)
	require.NoError(t, err)

	tr := newTransfer("stuck-1", 8, nil)
	e.inflight.Set(tr.id, tr)
	e.dumpInFlight()
	assert.Contains(t, buf.String(), "stuck-1")

	e.inflight.Remove(tr.id)
	require.NoError(t, e.Close())
}
