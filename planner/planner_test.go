package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debuti/bitslides/common"
)

func TestPlanDirectDelivery(t *testing.T) {
	laptop := common.Volume{Name: "Laptop"}
	pendrive := common.Volume{Name: "Pendrive"}
	volumes := []common.Volume{laptop, pendrive}
	slides := map[string][]common.Slide{
		"Laptop": {{Volume: laptop, Name: "Pendrive"}},
	}

	jobs := Plan(volumes, slides, nil)
	require.Len(t, jobs, 1)
	assert.Equal(t, common.EJobKind.Direct(), jobs[0].Kind)
	assert.Equal(t, "Laptop", jobs[0].Src.Name)
	assert.Equal(t, "Pendrive", jobs[0].Dst)
	assert.Equal(t, "Pendrive", jobs[0].Via.Name)
}

func TestPlanRoutedDelivery(t *testing.T) {
	laptop := common.Volume{Name: "Laptop"}
	backup := common.Volume{Name: "Backup"}
	volumes := []common.Volume{laptop, backup} // "Pendrive" not currently mounted
	slides := map[string][]common.Slide{
		"Laptop": {{Volume: laptop, Name: "Pendrive", Route: "Backup"}},
	}

	jobs := Plan(volumes, slides, nil)
	require.Len(t, jobs, 1)
	assert.Equal(t, common.EJobKind.Routed(), jobs[0].Kind)
	assert.Equal(t, "Pendrive", jobs[0].Dst)
	assert.Equal(t, "Backup", jobs[0].Via.Name)
}

func TestPlanDirectWinsOverRoute(t *testing.T) {
	laptop := common.Volume{Name: "Laptop"}
	pendrive := common.Volume{Name: "Pendrive"}
	backup := common.Volume{Name: "Backup"}
	volumes := []common.Volume{laptop, pendrive, backup}
	slides := map[string][]common.Slide{
		"Laptop": {{Volume: laptop, Name: "Pendrive", Route: "Backup"}},
	}

	jobs := Plan(volumes, slides, nil)
	require.Len(t, jobs, 1)
	assert.Equal(t, common.EJobKind.Direct(), jobs[0].Kind)
	assert.Equal(t, "Pendrive", jobs[0].Via.Name)
}

func TestPlanNoViablePathYieldsNoJob(t *testing.T) {
	laptop := common.Volume{Name: "Laptop"}
	volumes := []common.Volume{laptop} // neither Pendrive nor its route mounted
	slides := map[string][]common.Slide{
		"Laptop": {{Volume: laptop, Name: "Pendrive", Route: "Backup"}},
	}

	jobs := Plan(volumes, slides, nil)
	assert.Empty(t, jobs)
}

func TestPlanSuppressesSelfDelivery(t *testing.T) {
	laptop := common.Volume{Name: "Laptop"}
	volumes := []common.Volume{laptop}
	slides := map[string][]common.Slide{
		"Laptop": {{Volume: laptop, Name: "Laptop"}},
	}

	jobs := Plan(volumes, slides, nil)
	assert.Empty(t, jobs)
}
