package catalog

// Built-in reference data used when no DATABASE_URL is configured.

var seedClinicians = []Clinician{
	{GMC: "1234567", Title: "Dr", FirstName: "Gregory", LastName: "House", Role: "Consultant Physician"},
	{GMC: "2345678", Title: "Dr", FirstName: "Amelia", LastName: "Shaw", Role: "Anaesthetist"},
	{GMC: "3456789", Title: "Dr", FirstName: "Ravi", LastName: "Patel", Role: "Orthopaedic Surgeon"},
	{GMC: "4567890", Title: "Dr", FirstName: "Sarah", LastName: "McIntyre", Role: "General Surgeon"},
	{GMC: "5678901", Title: "Dr", FirstName: "Daniel", LastName: "Okafor", Role: "Vascular Surgeon"},
	{GMC: "C123456", Title: "Mr", FirstName: "James", LastName: "Whitaker", Role: "Consultant Surgeon"},
	{GMC: "C234567", Title: "Mr", FirstName: "Thomas", LastName: "Ellison", Role: "Consultant Orthopaedic Surgeon"},
	{GMC: "6789012", Title: "Dr", FirstName: "Aisha", LastName: "Rahman", Role: "Neurosurgeon"},
	{GMC: "7890123", Title: "Dr", FirstName: "Michael", LastName: "Turner", Role: "Plastic Surgeon"},
	{GMC: "8901234", Title: "Dr", FirstName: "Emily", LastName: "Chen", Role: "ENT Surgeon"},
}

var seedDevices = []Device{
	{
		DeviceCode:         "912312311",
		UDI:                "(01)05050474810693(17)290630(10)LOT-ODYSSEY-01(21)SN-ODYSSEY-0001",
		Manufacturer:       "Johnson & Johnson Surgical Vision, Inc.",
		ReferenceNumber:    "DRN00V0165",
		SerialNumber:       "SN-ODYSSEY-0001",
		LotNumber:          "LOT-ODYSSEY-01",
		Quantity:           1,
		ProductDescription: "TECNIS ODYSSEY SIMPLICITY IOL 16.5D",
		ExpiryDate:         "2029-06-30",
		TypeDescription:    "Posterior-chamber intraocular lens, pseudophakic",
		GMDNDescription:    "Intraocular lens, posterior chamber",
		GMDNCode:           "35658",
		BrandName:          "TECNIS ODYSSEY",
	},
	{
		DeviceCode:         "912312322",
		UDI:                "(01)05029867006838(17)290531(10)LOT-RAYONE-EMV-02(21)SN-RAYONE-0002",
		Manufacturer:       "Rayner Intraocular Lenses Limited",
		ReferenceNumber:    "RAO200E",
		SerialNumber:       "SN-RAYONE-0002",
		LotNumber:          "LOT-RAYONE-EMV-02",
		Quantity:           1,
		ProductDescription: "RayOne EMV preloaded posterior chamber IOL",
		ExpiryDate:         "2029-05-31",
		TypeDescription:    "Posterior-chamber intraocular lens, pseudophakic",
		GMDNDescription:    "Intraocular lens, posterior chamber",
		GMDNCode:           "35658",
		BrandName:          "RayOne EMV",
	},
	{
		DeviceCode:         "912312333",
		UDI:                "(01)10757770611246(17)280812(10)LOT-ENVISTA-03(21)SN-ENVISTA-0003",
		Manufacturer:       "Bausch + Lomb Surgical, Inc.",
		ReferenceNumber:    "ETEU125+260",
		SerialNumber:       "SN-ENVISTA-0003",
		LotNumber:          "LOT-ENVISTA-03",
		Quantity:           1,
		ProductDescription: "enVista Toric IOL hydrophobic acrylic",
		ExpiryDate:         "2028-08-12",
		TypeDescription:    "Toric posterior-chamber intraocular lens",
		GMDNDescription:    "Intraocular lens, posterior chamber",
		GMDNCode:           "35658",
		BrandName:          "enVista Toric",
	},
	{
		DeviceCode:         "912312344",
		UDI:                "(01)00380652552424(17)280630(10)LOT-ACRYSOF-04(21)SN-ACRYSOF-0004(240)MA60AC150",
		Manufacturer:       "Alcon Laboratories, Inc.",
		ReferenceNumber:    "MA60AC150",
		SerialNumber:       "SN-ACRYSOF-0004",
		LotNumber:          "LOT-ACRYSOF-04",
		Quantity:           1,
		ProductDescription: "AcrySof acrylic posterior chamber IOL",
		ExpiryDate:         "2028-06-30",
		TypeDescription:    "Posterior-chamber intraocular lens, pseudophakic",
		GMDNDescription:    "Intraocular lens, posterior chamber",
		GMDNCode:           "35658",
		BrandName:          "AcrySof",
	},
	{
		DeviceCode:         "912312355",
		UDI:                "(01)05050474657496(17)281231(10)LOT-TECNIS-05(21)SN-TECNIS-0005",
		Manufacturer:       "Johnson & Johnson Surgical Vision, Inc.",
		ReferenceNumber:    "ZCU150",
		SerialNumber:       "SN-TECNIS-0005",
		LotNumber:          "LOT-TECNIS-05",
		Quantity:           1,
		ProductDescription: "TECNIS Toric IOL",
		ExpiryDate:         "2028-12-31",
		TypeDescription:    "Toric posterior-chamber intraocular lens",
		GMDNDescription:    "Intraocular lens, posterior chamber",
		GMDNCode:           "35658",
		BrandName:          "TECNIS Toric",
	},
	{
		DeviceCode:         "912312366",
		UDI:                "(01)09501101530012(17)300101(10)LOT-PACE-06(21)SN-PACE-0006",
		Manufacturer:       "Medtronic",
		ReferenceNumber:    "AZUREXTDRMRI",
		SerialNumber:       "SN-PACE-0006",
		LotNumber:          "LOT-PACE-06",
		Quantity:           1,
		ProductDescription: "Dual chamber pacemaker",
		ExpiryDate:         "2030-01-01",
		TypeDescription:    "Implantable cardiac pacemaker",
		GMDNDescription:    "Cardiac pacemaker, implantable",
		GMDNCode:           "36576",
		BrandName:          "Azure XT",
	},
	{
		DeviceCode:         "912312377",
		UDI:                "(01)04012345678901(17)290101(10)LOT-HIP-07(21)SN-HIP-0007",
		Manufacturer:       "Stryker",
		ReferenceNumber:    "TRIDENT-II",
		SerialNumber:       "SN-HIP-0007",
		LotNumber:          "LOT-HIP-07",
		Quantity:           1,
		ProductDescription: "Acetabular shell",
		ExpiryDate:         "2029-01-01",
		TypeDescription:    "Hip prosthesis component",
		GMDNDescription:    "Hip prosthesis, acetabular component",
		GMDNCode:           "34931",
		BrandName:          "Trident II",
	},
}

var seedDiagnoses = []Diagnosis{
	// Ophthalmology
	{"H25.0", "Senile incipient cataract"},
	{"H25.1", "Senile nuclear cataract"},
	{"H25.2", "Senile cortical cataract"},
	{"H25.8", "Other senile cataract"},
	{"H25.9", "Senile cataract, unspecified"},
	{"H26.0", "Infantile, juvenile and presenile cataract"},
	{"H26.8", "Other specified cataract"},
	{"H26.9", "Cataract, unspecified"},
	{"H40.0", "Glaucoma suspect"},
	{"H40.1", "Primary open-angle glaucoma"},
	{"H40.2", "Primary angle-closure glaucoma"},
	{"H40.3", "Glaucoma secondary to eye trauma"},
	{"H40.4", "Glaucoma secondary to eye inflammation"},
	{"H40.5", "Glaucoma secondary to other eye disorders"},
	{"H40.8", "Other glaucoma"},
	{"H40.9", "Glaucoma, unspecified"},
	{"H33.0", "Retinal detachment with retinal break"},
	{"H33.2", "Serous retinal detachment"},
	{"H33.3", "Retinal breaks without detachment"},

	// Musculoskeletal
	{"M15.0", "Primary generalized osteoarthritis"},
	{"M16.0", "Primary coxarthrosis, bilateral"},
	{"M16.1", "Other primary coxarthrosis"},
	{"M16.9", "Osteoarthritis of hip, unspecified"},
	{"M17.0", "Primary gonarthrosis, bilateral"},
	{"M17.1", "Other primary gonarthrosis"},
	{"M17.9", "Osteoarthritis of knee, unspecified"},
	{"M19.0", "Primary osteoarthritis of other joints"},
	{"M19.9", "Osteoarthritis, unspecified"},
	{"M20.1", "Hallux valgus (acquired)"},
	{"M23.2", "Derangement of meniscus due to old tear or injury"},
	{"M48.0", "Spinal stenosis"},
	{"M50.0", "Cervical disc disorder with myelopathy"},
	{"M51.1", "Lumbar and other intervertebral disc disorders with radiculopathy"},
	{"M75.0", "Adhesive capsulitis of shoulder"},
	{"M75.1", "Rotator cuff syndrome"},
	{"M75.4", "Impingement syndrome of shoulder"},
	{"S72.0", "Fracture of neck of femur"},
	{"S82.1", "Fracture of upper end of tibia"},

	// Cardiovascular
	{"I10", "Essential (primary) hypertension"},
	{"I20.0", "Unstable angina"},
	{"I21.0", "Acute transmural myocardial infarction of anterior wall"},
	{"I21.9", "Acute myocardial infarction, unspecified"},
	{"I25.1", "Atherosclerotic heart disease"},
	{"I34.0", "Mitral valve insufficiency"},
	{"I35.0", "Aortic valve stenosis"},
	{"I42.0", "Dilated cardiomyopathy"},
	{"I44.2", "Atrioventricular block, complete"},
	{"I47.2", "Ventricular tachycardia"},
	{"I48.0", "Paroxysmal atrial fibrillation"},
	{"I48.9", "Atrial fibrillation and flutter, unspecified"},
	{"I50.0", "Congestive heart failure"},
	{"I50.9", "Heart failure, unspecified"},
	{"I70.2", "Atherosclerosis of arteries of extremities"},

	// General surgery
	{"K21.0", "Gastro-oesophageal reflux disease with oesophagitis"},
	{"K21.9", "Gastro-oesophageal reflux disease without oesophagitis"},
	{"K35.2", "Acute appendicitis with generalized peritonitis"},
	{"K35.9", "Acute appendicitis, unspecified"},
	{"K40.2", "Bilateral inguinal hernia, without obstruction or gangrene"},
	{"K40.9", "Inguinal hernia, unspecified"},
	{"K57.3", "Diverticular disease of large intestine without perforation or abscess"},
	{"K80.0", "Calculus of gallbladder with acute cholecystitis"},
	{"K80.2", "Calculus of gallbladder without cholecystitis"},
	{"K81.0", "Acute cholecystitis"},
	{"K92.2", "Gastrointestinal haemorrhage, unspecified"},

	// Urology
	{"N20.0", "Calculus of kidney"},
	{"N20.1", "Calculus of ureter"},
	{"N32.0", "Bladder-neck obstruction"},
	{"N39.0", "Urinary tract infection, site not specified"},
	{"N40.0", "Benign prostatic hyperplasia"},
	{"N43.3", "Hydrocele"},
	{"N45.1", "Orchitis, epididymitis and epididymo-orchitis with abscess"},

	// Gynaecology
	{"N80.0", "Endometriosis of uterus"},
	{"N80.9", "Endometriosis, unspecified"},
	{"N81.1", "Cystocele"},
	{"N84.0", "Polyp of corpus uteri"},
	{"D25.0", "Submucous leiomyoma of uterus"},
	{"D25.9", "Leiomyoma of uterus, unspecified"},

	// Neurology
	{"G20", "Parkinson's disease"},
	{"G35", "Multiple sclerosis"},
	{"G40.9", "Epilepsy, unspecified"},
	{"G56.0", "Carpal tunnel syndrome"},
	{"G95.9", "Disease of spinal cord, unspecified"},

	// Respiratory
	{"J44.0", "Chronic obstructive pulmonary disease with acute lower respiratory infection"},
	{"J44.9", "Chronic obstructive pulmonary disease, unspecified"},
	{"J45.9", "Asthma, unspecified"},
	{"J93.9", "Pneumothorax, unspecified"},

	// Oncology
	{"C18.9", "Malignant neoplasm of colon, unspecified"},
	{"C50.9", "Malignant neoplasm of breast, unspecified"},
	{"C61", "Malignant neoplasm of prostate"},
	{"C71.9", "Malignant neoplasm of brain, unspecified"},

	// Vascular
	{"I83.9", "Varicose veins of lower extremities without ulcer or inflammation"},
	{"I87.2", "Venous insufficiency (chronic) (peripheral)"},
	{"I74.3", "Embolism and thrombosis of arteries of the lower extremities"},

	// Trauma
	{"S06.0", "Concussion"},
	{"S42.2", "Fracture of upper end of humerus"},
	{"S52.5", "Fracture of lower end of radius"},
	{"S83.5", "Sprain and strain involving cruciate ligament of knee"},

	// Unspecified
	{"R10.4", "Other and unspecified abdominal pain"},
	{"R55", "Syncope and collapse"},
	{"R69", "Unknown and unspecified causes of morbidity"},
}

var seedASAClasses = []ASAClass{
	{"1", "ASA I", "A normal healthy patient"},
	{"2", "ASA II", "A patient with mild systemic disease"},
	{"3", "ASA III", "A patient with severe systemic disease"},
	{"4", "ASA IV", "A patient with severe systemic disease that is a constant threat to life"},
	{"5", "ASA V", "A moribund patient who is not expected to survive without the operation"},
	{"6", "ASA VI", "A declared brain-dead patient whose organs are being removed for donor purposes"},
}

var seedLateralities = []Laterality{
	{"L", "Left"},
	{"R", "Right"},
	{"B", "Bilateral"},
	{"8", "Not applicable"},
	{"9", "Not known"},
}
