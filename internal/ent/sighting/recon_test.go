package sighting_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/birdwatch/yardlist/internal/ent/sighting"
)

func reference() []Species {
	return []Species{
		{Name: "Anna's Hummingbird"},
		{
			Name:      "Steller's Jay",
			Seen:      "Yes",
			FirstSeen: "2023-05-01",
			Notes:     "bold, loud",
		},
		{Name: "Dark-eyed Junco", Notes: "winter flocks"},
	}
}

var _ = Describe("Unify", func() {
	It("returns reference fields unchanged for an empty overlay", func() {
		ref := reference()
		rows := Unify(ref, map[string]Observation{})

		Expect(rows).To(HaveLen(len(ref)))
		for i, sp := range ref {
			Expect(rows[i].Name).To(Equal(sp.Name))
			Expect(rows[i].Seen).To(Equal(sp.Seen))
			Expect(rows[i].FirstSeen).To(Equal(sp.FirstSeen))
			Expect(rows[i].Notes).To(Equal(sp.Notes))
		}
	})

	It("treats a nil overlay like an empty one", func() {
		rows := Unify(reference(), nil)
		Expect(rows).To(HaveLen(3))
		Expect(rows[0].Seen).To(Equal(""))
		Expect(rows[0].FirstSeen).To(Equal(""))
		Expect(rows[0].Notes).To(Equal(""))
	})

	It("lets non-empty overlay values win field by field", func() {
		ovl := map[string]Observation{
			"Anna's Hummingbird": {Seen: true, Notes: "at the feeder"},
		}
		rows := Unify(reference(), ovl)

		Expect(rows[0].Seen).To(Equal(SeenYes))
		Expect(rows[0].Notes).To(Equal("at the feeder"))
		Expect(rows[0].FirstSeen).To(Equal(""))
	})

	It("keeps reference state for species the overlay is silent about", func() {
		ovl := map[string]Observation{
			"Anna's Hummingbird": {Seen: true},
		}
		rows := Unify(reference(), ovl)

		Expect(rows[1].Seen).To(Equal("Yes"))
		Expect(rows[1].FirstSeen).To(Equal("2023-05-01"))
		Expect(rows[1].Notes).To(Equal("bold, loud"))
	})

	// A false overlay flag normalizes to the empty string, and empty
	// values never override. "Un-seeing" therefore cannot reach a
	// reference-stored "Yes" through the overlay alone.
	It("does not clear a reference Yes with an explicit overlay false", func() {
		ovl := map[string]Observation{
			"Steller's Jay": {Seen: false},
		}
		rows := Unify(reference(), ovl)

		Expect(rows[1].Seen).To(Equal("Yes"))
		Expect(rows[1].FirstSeen).To(Equal("2023-05-01"))
	})

	It("drops overlay entries for species missing from the reference", func() {
		ovl := map[string]Observation{
			"Passenger Pigeon": {Seen: true, Notes: "unlikely"},
		}
		rows := Unify(reference(), ovl)

		Expect(rows).To(HaveLen(3))
		for i := range rows {
			Expect(rows[i].Name).NotTo(Equal("Passenger Pigeon"))
		}
	})

	It("derives a stable record ID from the species name", func() {
		rows := Unify(reference(), nil)
		again := Unify(reference(), nil)

		Expect(rows[0].RecordID).To(Equal(again[0].RecordID))
		Expect(rows[0].RecordID).To(HaveLen(36))
		Expect(rows[0].RecordID).NotTo(Equal(rows[1].RecordID))
	})
})

var _ = Describe("Row.Apply", func() {
	It("overwrites the three mutable fields", func() {
		rows := Unify(reference(), nil)
		rows[0].Apply(true, "2024-03-10", "first of the year")

		Expect(rows[0].Seen).To(Equal(SeenYes))
		Expect(rows[0].FirstSeen).To(Equal("2024-03-10"))
		Expect(rows[0].Notes).To(Equal("first of the year"))
	})

	It("discards a stale date when seen is false", func() {
		rows := Unify(reference(), nil)
		rows[1].Apply(false, "2023-05-01", "bold, loud")

		Expect(rows[1].Seen).To(Equal(""))
		Expect(rows[1].FirstSeen).To(Equal(""))
		Expect(rows[1].Notes).To(Equal("bold, loud"))
	})

	It("is idempotent", func() {
		rows := Unify(reference(), nil)
		rows[2].Apply(true, "2024-01-01", "x")
		once := rows[2]
		rows[2].Apply(true, "2024-01-01", "x")

		Expect(rows[2]).To(Equal(once))
	})
})

var _ = Describe("Updates", func() {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	It("produces exactly one record per row", func() {
		rows := Unify(reference(), nil)
		upds := Updates(rows, "user-1", now)

		Expect(upds).To(HaveLen(len(rows)))
		for i, upd := range upds {
			Expect(upd.Species).To(Equal(rows[i].Name))
			Expect(upd.UserID).To(Equal("user-1"))
			Expect(upd.UpdatedAt).To(Equal(now))
		}
	})

	It("emits NULL dates for unseen species", func() {
		rows := Unify(reference(), nil)
		upds := Updates(rows, "user-1", now)

		Expect(upds[0].Seen).To(BeFalse())
		Expect(upds[0].FirstSeen.Valid).To(BeFalse())
		Expect(upds[1].Seen).To(BeTrue())
		Expect(upds[1].FirstSeen.Valid).To(BeTrue())
		Expect(upds[1].FirstSeen.String).To(Equal("2023-05-01"))
	})

	It("never emits a date without the seen flag", func() {
		ref := []Species{{Name: "Varied Thrush", FirstSeen: "2022-11-11"}}
		upds := Updates(Unify(ref, nil), "user-1", now)

		Expect(upds[0].Seen).To(BeFalse())
		Expect(upds[0].FirstSeen.Valid).To(BeFalse())
	})
})

var _ = Describe("AsOverlay", func() {
	It("is a fixed point of Unify", func() {
		ref := reference()
		ovl := map[string]Observation{
			"Anna's Hummingbird": {Seen: true, FirstSeen: "2024-02-02"},
			"Dark-eyed Junco":    {Notes: "under the feeder"},
		}
		rows := Unify(ref, ovl)
		again := Unify(ref, AsOverlay(rows))

		Expect(again).To(Equal(rows))
	})
})

var _ = Describe("Changed", func() {
	It("returns nothing when the view matches the overlay", func() {
		ref := []Species{{Name: "Spotted Towhee"}}
		ovl := map[string]Observation{
			"Spotted Towhee": {Seen: true, FirstSeen: "2024-04-04", Notes: "n"},
		}
		rows := Unify(ref, ovl)

		Expect(Changed(rows, ovl)).To(BeEmpty())
	})

	It("returns only edited rows", func() {
		ref := reference()
		ovl := AsOverlay(Unify(ref, nil))
		rows := Unify(ref, ovl)
		rows[2].Apply(true, "2024-05-05", "winter flocks")

		changed := Changed(rows, ovl)
		Expect(changed).To(HaveLen(1))
		Expect(changed[0].Name).To(Equal("Dark-eyed Junco"))
	})

	It("counts rows missing from the overlay as changed", func() {
		ref := reference()
		rows := Unify(ref, nil)

		// Steller's Jay and the junco carry reference state the remote
		// store has never heard of.
		changed := Changed(rows, map[string]Observation{})
		Expect(changed).To(HaveLen(2))
	})
})

var _ = Describe("bulk actions", func() {
	It("marks everything seen today", func() {
		rows := Unify(reference(), nil)
		MarkAll(rows, "2024-07-07")

		for i := range rows {
			Expect(rows[i].Seen).To(Equal(SeenYes))
			Expect(rows[i].FirstSeen).To(Equal("2024-07-07"))
		}
		Expect(rows[2].Notes).To(Equal("winter flocks"))
	})

	It("clears seen and date but keeps notes", func() {
		rows := Unify(reference(), nil)
		ClearAll(rows, false)

		Expect(rows[1].Seen).To(Equal(""))
		Expect(rows[1].FirstSeen).To(Equal(""))
		Expect(rows[1].Notes).To(Equal("bold, loud"))
	})

	It("wipes notes too when asked", func() {
		rows := Unify(reference(), nil)
		ClearAll(rows, true)

		for i := range rows {
			Expect(rows[i].Notes).To(Equal(""))
		}
	})
})
