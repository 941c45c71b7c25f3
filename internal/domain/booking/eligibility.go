package booking

import "github.com/BruksfildServices01/salon-scheduler/internal/models"

// ResolveEligible narrows active staff to those assigned every requested
// service. When the business has no assignment rows at all, every active
// staff member qualifies. An eligible preferred staff member is moved first.
func ResolveEligible(
	staff []models.Staff,
	assignments []models.StaffService,
	requested []uint,
	businessHasAssignments bool,
	preferred *uint,
) []models.Staff {

	wanted := make(map[uint]struct{}, len(requested))
	for _, id := range requested {
		wanted[id] = struct{}{}
	}

	assigned := make(map[uint]map[uint]struct{})
	for _, a := range assignments {
		if _, ok := wanted[a.ServiceID]; !ok {
			continue
		}
		set, ok := assigned[a.StaffID]
		if !ok {
			set = make(map[uint]struct{})
			assigned[a.StaffID] = set
		}
		set[a.ServiceID] = struct{}{}
	}

	eligible := make([]models.Staff, 0, len(staff))
	for _, s := range staff {
		if !s.Active {
			continue
		}
		if businessHasAssignments && len(assigned[s.ID]) < len(wanted) {
			continue
		}
		eligible = append(eligible, s)
	}

	if preferred != nil {
		for i, s := range eligible {
			if s.ID != *preferred {
				continue
			}
			if i > 0 {
				copy(eligible[1:i+1], eligible[0:i])
				eligible[0] = s
			}
			break
		}
	}

	return eligible
}
