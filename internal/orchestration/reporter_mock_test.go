package orchestration_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/agbru/mtcollatz/internal/orchestration"
	"github.com/agbru/mtcollatz/internal/orchestration/mocks"
)

// TestRun_ReporterContract verifies the coordinator hands the reporter a
// wait group, an update channel, and the progress writer, and waits for the
// reporter to finish before returning.
func TestRun_ReporterContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reporter := mocks.NewMockProgressReporter(ctrl)
	reporter.EXPECT().
		DisplayProgress(gomock.Any(), gomock.Any(), io.Discard).
		Do(func(wg *sync.WaitGroup, updates <-chan orchestration.ProgressUpdate, _ io.Writer) {
			defer wg.Done()
			for range updates {
			}
		}).
		Times(1)

	coord := &orchestration.Coordinator{N: 100, Workers: 2}
	res := coord.Run(context.Background(), reporter, io.Discard)

	if res.Processed != 100 {
		t.Errorf("processed = %d, want 100", res.Processed)
	}
}
