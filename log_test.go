// seehuhn.de/go/iccprofile - read and write ICC profiles
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package icc

import (
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	SetLogger(l)
	t.Cleanup(func() { SetLogger(nil) })

	p := testProfile()
	p.Version = Version2_1_0
	data, err := p.Encode()
	require.NoError(t, err)
	_, err = Decode(data)
	require.NoError(t, err)

	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Contains(t, messages, "profile has no ID, using computed value")
	assert.Contains(t, messages, "tag data shared with another tag")

	SetLogger(nil)
	assert.Equal(t, defaultLogger, logger())
}

func TestSetLoggerConcurrent(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	data, err := testProfile().Encode()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 20 {
				_, err := Decode(data)
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			for range 20 {
				if i%2 == 0 {
					l, _ := test.NewNullLogger()
					SetLogger(l)
				} else {
					SetLogger(nil)
				}
			}
		}()
	}
	wg.Wait()
}
