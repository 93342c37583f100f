// Package planner implements spec.md §4.3's Planner: it cross-joins the
// discovered volumes and their slides into a prioritized list of SyncJobs.
package planner

import (
	"sort"

	"github.com/debuti/bitslides/common"
	"github.com/debuti/bitslides/trace"
)

// Plan builds the job list for this run. volumes is the discovered set;
// slidesBySrc maps a source volume's name to its indexed slides.
//
// Ordering: direct jobs are placed before routed jobs for the same slide
// (spec.md §4.3 "Ordering" — so a file that can go straight to its
// destination is never mis-deposited into a routing hop on the same run).
// Within each class, order is unspecified, matching the spec.
func Plan(volumes []common.Volume, slidesBySrc map[string][]common.Slide, tr *trace.Tracer) []*common.SyncJob {
	byName := make(map[string]common.Volume, len(volumes))
	for _, v := range volumes {
		byName[v.Name] = v
	}

	var direct, routed []*common.SyncJob

	for _, vols := range slidesBySrc {
		for _, s := range vols {
			job := planOne(s, byName)
			if job == nil {
				continue
			}
			switch job.Kind {
			case common.EJobKind.Direct():
				direct = append(direct, job)
			case common.EJobKind.Routed():
				routed = append(routed, job)
			}
		}
	}

	// Unspecified order within a class; a sort by source+dst (pairs are
	// unique, so sort.Slice's lack of stability does not matter) keeps output
	// deterministic for tests without claiming an ordering guarantee the spec
	// doesn't make.
	sortJobs(direct)
	sortJobs(routed)

	jobs := make([]*common.SyncJob, 0, len(direct)+len(routed))
	jobs = append(jobs, direct...)
	jobs = append(jobs, routed...)

	for _, j := range jobs {
		tr.Emit(trace.Event{Kind: trace.EventNote, Job: j.String(), Note: "planned"})
	}
	return jobs
}

// planOne applies spec.md §4.3's per-slide job construction rule, including
// the self-delivery suppression.
func planOne(s common.Slide, byName map[string]common.Volume) *common.SyncJob {
	if dst, ok := byName[s.Name]; ok {
		if isSelfDelivery(s.Volume, dst, s.Name) {
			return nil
		}
		return common.NewSyncJob(s.Volume, s.Name, dst, common.EJobKind.Direct())
	}
	if s.Route != "" {
		if via, ok := byName[s.Route]; ok {
			if isSelfDelivery(s.Volume, via, s.Name) {
				return nil
			}
			return common.NewSyncJob(s.Volume, s.Name, via, common.EJobKind.Routed())
		}
	}
	// Neither the destination nor its route is currently mounted: no job.
	return nil
}

// isSelfDelivery suppresses a job whose source equals its via equals the
// volume that owns the destination slide — a true no-op (spec.md §4.3
// "Self-delivery").
func isSelfDelivery(src, via common.Volume, dstName string) bool {
	return src.Name == via.Name && via.Name == dstName
}

func sortJobs(jobs []*common.SyncJob) {
	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].Src.Name != jobs[j].Src.Name {
			return jobs[i].Src.Name < jobs[j].Src.Name
		}
		return jobs[i].Dst < jobs[j].Dst
	})
}
