package reconcile

import (
	"fmt"
	"sort"
	"strings"
)

// Field names reported by change detection.
const (
	FieldSequenceNumber = "sequence_number"
	FieldForeignAmount  = "foreign_amount"
	FieldDeliveryDate   = "delivery_date"
)

// BuildPlan compares the sheet candidates with the store.
//
// persisted is the full set of stored order numbers and current holds the
// stored records of the order numbers shared with the sheet. A shared order
// number missing from current is rewritten in full.
//
// BuildPlan does no I/O.
func BuildPlan(candidates *CandidateSet, persisted []int64, current map[int64]Order) *Plan {
	plan := &Plan{
		ToDelete: []int64{},
		ToUpdate: []int64{},
		ToInsert: []int64{},
	}

	stored := make(map[int64]struct{}, len(persisted))
	for _, key := range persisted {
		stored[key] = struct{}{}
	}

	for key := range stored {
		if !candidates.Has(key) {
			plan.ToDelete = append(plan.ToDelete, key)
		}
	}
	sort.Slice(plan.ToDelete, func(i, j int) bool { return plan.ToDelete[i] < plan.ToDelete[j] })

	for _, key := range plan.ToDelete {
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionDelete,
			Key:    key,
			Reason: "missing in sheet",
		})
	}

	var inserts []Action
	for _, key := range candidates.Keys() {
		c, _ := candidates.Get(key)

		if _, ok := stored[key]; !ok {
			plan.ToInsert = append(plan.ToInsert, key)
			inserts = append(inserts, Action{
				Type:      ActionInsert,
				Key:       key,
				Reason:    "missing in store",
				Candidate: c,
			})
			continue
		}

		plan.ToUpdate = append(plan.ToUpdate, key)

		existing, loaded := current[key]
		if !loaded {
			plan.Actions = append(plan.Actions, Action{
				Type:      ActionUpdate,
				Key:       key,
				Reason:    "stored record not loaded",
				Fields:    []string{FieldSequenceNumber, FieldForeignAmount, FieldDeliveryDate},
				Recompute: true,
				Candidate: c,
			})
			plan.Summary.Recomputes++
			continue
		}

		fields, recompute := compareFields(existing, c)
		if len(fields) == 0 {
			plan.Summary.Unchanged++
			continue
		}

		stale := existing
		plan.Actions = append(plan.Actions, Action{
			Type:      ActionUpdate,
			Key:       key,
			Reason:    fmt.Sprintf("changed: %s", strings.Join(fields, ", ")),
			Fields:    fields,
			Recompute: recompute,
			Candidate: c,
			Current:   &stale,
		})
		if recompute {
			plan.Summary.Recomputes++
		}
	}
	plan.Actions = append(plan.Actions, inserts...)

	plan.Summary.External = candidates.Len()
	plan.Summary.Persisted = len(stored)
	plan.Summary.Duplicates = candidates.Duplicates()
	plan.Summary.Deletes = len(plan.ToDelete)
	plan.Summary.Inserts = len(plan.ToInsert)
	plan.Summary.Updates = len(plan.ToUpdate) - plan.Summary.Unchanged

	return plan
}

// compareFields lists the sheet fields that differ between the stored record
// and the candidate. recompute is set when the local amount depends on a
// changed field.
func compareFields(current Order, c Candidate) (fields []string, recompute bool) {
	if current.SequenceNumber != c.SequenceNumber {
		fields = append(fields, FieldSequenceNumber)
	}
	if !current.ForeignAmount.Equal(c.ForeignAmount) {
		fields = append(fields, FieldForeignAmount)
		recompute = true
	}
	if current.DeliveryDate != c.DeliveryDate {
		fields = append(fields, FieldDeliveryDate)
		recompute = true
	}
	return fields, recompute
}
