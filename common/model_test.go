package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncJobTakeTriggerOnce(t *testing.T) {
	job := NewSyncJob(Volume{Name: "Laptop"}, "Pendrive", Volume{Name: "Pendrive"}, EJobKind.Direct())

	trigger, err := job.TakeTrigger()
	require.NoError(t, err)
	require.NotNil(t, trigger)

	_, err = job.TakeTrigger()
	assert.ErrorIs(t, err, ErrTriggerAlreadyTaken)
}

func TestSyncJobWaitUnblocksAfterTrigger(t *testing.T) {
	job := NewSyncJob(Volume{Name: "Laptop"}, "Pendrive", Volume{Name: "Pendrive"}, EJobKind.Direct())
	trigger, err := job.TakeTrigger()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		job.Wait()
		close(done)
	}()

	trigger <- struct{}{}
	<-done
}

func TestWIPPathIsHiddenSibling(t *testing.T) {
	assert.Equal(t, "/vol/Slides/Pendrive/.song.mp3.wip", WIPPath("/vol/Slides/Pendrive/song.mp3"))
}
