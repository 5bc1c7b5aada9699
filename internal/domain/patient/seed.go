package patient

import (
	"time"

	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/catalog"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/clinician"
	"github.com/ashley-wheat-design/nhs-enter-registry-information/internal/domain/device"
)

// Seed builds the demo patients every new session starts with. Each call
// returns fresh values.
func Seed(cat *catalog.Catalog) []*Patient {
	s := seeder{cat: cat}

	jodie := &Patient{
		NHSNumber:    "9123123123",
		FirstName:    "Jodie",
		LastName:     "Brown",
		DateOfBirth:  "1949-08-15",
		Sex:          "Female",
		Address:      []string{"73 Roman Rd", "Leeds", "LS2 5ZN"},
		RegisteredGP: []string{"Beech House surgery", "1 Ash Tree Road", "Knaresborough", "HG5 0UB"},
		Procedures: []*Procedure{
			{
				ID:                   "proc-1001",
				RecordedAt:           s.at("2024-03-12T10:14:00Z"),
				Date:                 "2024-03-12",
				Time:                 "09:30",
				PrimaryDiagnosisCode: "H25.9",
				ASAClassification:    "2",
				OperationOutcome:     catalog.OutcomeImplant,
				Laterality:           "R",
				Clinicians:           s.team("C123456", "4567890", "8901234"),
				Devices:              s.devices(d("912312311", device.StatusImplanted)),
			},
			{
				ID:                       "proc-1002",
				RecordedAt:               s.at("2025-07-22T14:22:00Z"),
				Date:                     "2025-07-22",
				Time:                     "13:10",
				PrimaryDiagnosisCode:     "H40.1",
				AdditionalDiagnosisCodes: []string{"I10"},
				ASAClassification:        "2",
				OperationOutcome:         catalog.OutcomeImplant,
				Laterality:               "L",
				Clinicians:               s.team("C234567", "8901234", "2345678"),
				Devices:                  s.devices(d("912312322", device.StatusImplanted)),
			},
			{
				ID:                   "proc-1003",
				RecordedAt:           s.at("2026-01-09T08:05:00Z"),
				Date:                 "2026-01-09",
				Time:                 "07:50",
				PrimaryDiagnosisCode: "H26.9",
				ASAClassification:    "3",
				OperationOutcome:     catalog.OutcomeReplacement,
				Laterality:           "L",
				Clinicians:           s.team("C123456", "4567890", "8901234"),
				Devices: s.devices(
					d("912312322", device.StatusRemoved),
					d("912312333", device.StatusImplanted),
				),
			},
		},
	}

	height, weight := 172.0, 74.0
	alex := &Patient{
		NHSNumber:    "4857773456",
		FirstName:    "Alex",
		LastName:     "Patel",
		DateOfBirth:  "1983-02-09",
		Sex:          "Male",
		Address:      []string{"12 Market St", "Leeds", "LS1 2AB"},
		RegisteredGP: []string{"City Health Practice", "99 High Street", "Leeds", "LS1 1AA"},
		HeightCm:     &height,
		WeightKg:     &weight,
		Procedures: []*Procedure{
			{
				ID:                   "proc-2001",
				RecordedAt:           s.at("2024-06-03T08:45:00Z"),
				Date:                 "2024-06-03",
				Time:                 "08:15",
				PrimaryDiagnosisCode: "I48.9",
				ASAClassification:    "3",
				OperationOutcome:     catalog.OutcomeImplant,
				Laterality:           "8",
				Clinicians:           s.team("1234567", "5678012", "5678901"),
				Devices:              s.devices(d("912312366", device.StatusImplanted)),
			},
			{
				ID:                   "proc-2002",
				RecordedAt:           s.at("2025-09-18T16:05:00Z"),
				Date:                 "2025-09-18",
				Time:                 "15:20",
				PrimaryDiagnosisCode: "M16.9",
				ASAClassification:    "2",
				OperationOutcome:     catalog.OutcomeImplant,
				Laterality:           "R",
				Clinicians:           s.team("C234567", "3456789", "3456789"),
				Devices:              s.devices(d("912312377", device.StatusImplanted)),
			},
			{
				ID:                       "proc-2003",
				RecordedAt:               s.at("2025-12-02T11:40:00Z"),
				Date:                     "2025-12-02",
				Time:                     "11:05",
				PrimaryDiagnosisCode:     "M17.9",
				AdditionalDiagnosisCodes: []string{"I10"},
				ASAClassification:        "2",
				OperationOutcome:         catalog.OutcomeDeviceRemoval,
				Laterality:               "L",
				Clinicians:               s.team("C234567", "3456789", "4567801"),
				Devices:                  s.devices(d("912312377", device.StatusRemoved)),
			},
		},
	}

	patients := []*Patient{jodie, alex}
	for _, p := range patients {
		for _, pr := range p.Procedures {
			if pr.AdditionalDiagnosisCodes == nil {
				pr.AdditionalDiagnosisCodes = []string{}
			}
		}
		p.RecomputeDevices()
	}
	return patients
}

type seededDevice struct {
	code   string
	status device.Status
}

func d(code string, status device.Status) seededDevice {
	return seededDevice{code: code, status: status}
}

type seeder struct {
	cat *catalog.Catalog
}

func (s seeder) at(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return t
}

// team skips registration numbers missing from the directory.
func (s seeder) team(consultant, supervisor string, leads ...string) clinician.Team {
	team := clinician.Team{LeadSurgeons: []catalog.Clinician{}}
	if c, err := s.cat.ClinicianByGMC(consultant); err == nil {
		team.Assign(clinician.RoleResponsibleConsultant, c)
	}
	if c, err := s.cat.ClinicianByGMC(supervisor); err == nil {
		team.Assign(clinician.RoleSupervisingSurgeon, c)
	}
	for _, gmc := range leads {
		if c, err := s.cat.ClinicianByGMC(gmc); err == nil {
			team.Assign(clinician.RoleOperationLeadSurgeon, c)
		}
	}
	return team
}

func (s seeder) devices(entries ...seededDevice) device.Set {
	set := device.Set{}
	for _, e := range entries {
		found, err := s.cat.DeviceByCode(e.code)
		if err != nil {
			found = catalog.Device{DeviceCode: e.code}
		}
		a := device.NewAssignment(found)
		a.Status = e.status
		_ = set.Add(a)
	}
	return set
}
