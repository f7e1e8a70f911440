package models

import "testing"

func uintPtr(v uint) *uint { return &v }

func TestDeriveNominationStatus(t *testing.T) {
	tests := []struct {
		name      string
		examiner1 *uint
		examiner2 *uint
		examiner3 *uint
		want      NominationStatus
	}{
		{name: "no examiners", want: StatusPending},
		{name: "one examiner", examiner1: uintPtr(1), want: StatusPending},
		{name: "two examiners", examiner1: uintPtr(1), examiner2: uintPtr(2), want: StatusPending},
		{name: "gap in slots", examiner1: uintPtr(1), examiner3: uintPtr(3), want: StatusPending},
		{name: "all three examiners", examiner1: uintPtr(1), examiner2: uintPtr(2), examiner3: uintPtr(3), want: StatusNominated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveNominationStatus(tt.examiner1, tt.examiner2, tt.examiner3)
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestEvaluationExaminerIDs(t *testing.T) {
	e := &Evaluation{
		Examiner1ID: uintPtr(5),
		Examiner3ID: uintPtr(7),
	}

	ids := e.ExaminerIDs()
	if len(ids) != 2 || ids[0] != 5 || ids[1] != 7 {
		t.Fatalf("expected [5 7], got %v", ids)
	}

	if !e.HasExaminer(7) {
		t.Fatal("expected lecturer 7 to occupy a slot")
	}
	if e.HasExaminer(6) {
		t.Fatal("lecturer 6 occupies no slot")
	}
}

func TestLecturerTitleRanking(t *testing.T) {
	if !TitleProf.AtLeast(TitleAssocProf) {
		t.Fatal("Prof should rank at least AssocProf")
	}
	if !TitleAssocProf.AtLeast(TitleAssocProf) {
		t.Fatal("AtLeast should be inclusive")
	}
	if TitleDr.AtLeast(TitleAssocProf) {
		t.Fatal("Dr should rank below AssocProf")
	}
	if LecturerTitle("unknown").AtLeast(TitleDr) {
		t.Fatal("unknown titles rank below Dr")
	}
}
