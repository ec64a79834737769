package content

// AnatomySystem is one entry of the body-systems catalogue.
type AnatomySystem struct {
	ID          string   `json:"id"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Structures  []string `json:"structures"`
	Functions   []string `json:"functions"`
	Disorders   []string `json:"disorders"`
	Facts       []string `json:"facts"`
}

var anatomyOrder = []string{
	"skeletal",
	"muscular",
	"cardiovascular",
	"nervous",
	"respiratory",
	"digestive",
	"urinary",
}

var anatomySystems = map[string]AnatomySystem{
	"skeletal": {
		Icon:        "bone",
		Color:       "slate",
		Name:        "Skeletal System",
		Description: "Provides structural support, protects vital organs and enables movement through the joints.",
		Structures:  []string{"206 bones in the adult", "Articular cartilage", "Ligaments and tendons", "Bone marrow", "Periosteum"},
		Functions:   []string{"Body support and posture", "Protection of vital organs", "Blood cell production", "Mineral storage", "Movement"},
		Disorders:   []string{"Osteoporosis", "Arthritis", "Fractures and dislocations", "Scoliosis"},
		Facts:       []string{"The femur is the longest bone", "Bone tissue renews itself about every 10 years", "Bones hold 99% of the body's calcium"},
	},
	"muscular": {
		Icon:        "activity",
		Color:       "orange",
		Name:        "Muscular System",
		Description: "Responsible for movement, posture and heat production through muscle contraction.",
		Structures:  []string{"More than 640 skeletal muscles", "Muscle fibers", "Tendons and aponeuroses", "Neuromuscular junctions"},
		Functions:   []string{"Voluntary and involuntary movement", "Posture", "Heat production", "Blood and lymph circulation"},
		Disorders:   []string{"Muscular dystrophy", "Myasthenia gravis", "Fibromyalgia", "Strains and tears"},
		Facts:       []string{"Muscles make up about 40% of body weight", "The gluteus maximus is the largest muscle", "Smiling uses around a dozen muscles"},
	},
	"cardiovascular": {
		Icon:        "heart",
		Color:       "red",
		Name:        "Cardiovascular System",
		Description: "Carries oxygen, nutrients and waste through blood pumped by the heart.",
		Structures:  []string{"Heart with four chambers", "Arteries and arterioles", "Veins and venules", "Capillaries"},
		Functions:   []string{"Oxygen transport", "Nutrient delivery", "Waste removal", "Temperature regulation"},
		Disorders:   []string{"Hypertension", "Coronary artery disease", "Arrhythmia", "Heart failure"},
		Facts:       []string{"The heart beats about 100,000 times a day", "Blood vessels would stretch about 100,000 km end to end"},
	},
	"nervous": {
		Icon:        "brain",
		Color:       "purple",
		Name:        "Nervous System",
		Description: "Controls and coordinates body functions through electrical and chemical signals.",
		Structures:  []string{"Brain", "Spinal cord", "Peripheral nerves", "Neurons and glial cells"},
		Functions:   []string{"Sensory perception", "Motor control", "Memory and learning", "Regulation of organs"},
		Disorders:   []string{"Migraine", "Epilepsy", "Multiple sclerosis", "Neuropathy"},
		Facts:       []string{"The brain has about 86 billion neurons", "Nerve signals can travel over 100 m/s"},
	},
	"respiratory": {
		Icon:        "wind",
		Color:       "sky",
		Name:        "Respiratory System",
		Description: "Exchanges gases between the air and the blood in the pulmonary alveoli.",
		Structures:  []string{"Nose and sinuses", "Trachea and bronchi", "Lungs", "Alveoli", "Diaphragm"},
		Functions:   []string{"Gas exchange", "Acid-base balance", "Voice production", "Filtering inhaled air"},
		Disorders:   []string{"Asthma", "Bronchitis", "Pneumonia", "Sleep apnea"},
		Facts:       []string{"The lungs hold about 300 million alveoli", "An adult breathes around 20,000 times a day"},
	},
	"digestive": {
		Icon:        "apple",
		Color:       "green",
		Name:        "Digestive System",
		Description: "Breaks down food and absorbs the nutrients the body needs.",
		Structures:  []string{"Mouth and esophagus", "Stomach", "Small intestine", "Large intestine", "Liver and pancreas"},
		Functions:   []string{"Digestion", "Nutrient absorption", "Waste elimination", "Support of immunity"},
		Disorders:   []string{"Reflux", "Irritable bowel syndrome", "Gastritis", "Celiac disease"},
		Facts:       []string{"The small intestine is about 6 m long", "The gut hosts trillions of bacteria"},
	},
	"urinary": {
		Icon:        "droplets",
		Color:       "yellow",
		Name:        "Urinary System",
		Description: "Filters waste from the blood and regulates the body's fluid and electrolyte balance.",
		Structures:  []string{"Kidneys", "Ureters", "Bladder", "Urethra", "Nephrons"},
		Functions:   []string{"Blood filtration", "Fluid balance", "Blood pressure regulation", "Electrolyte balance"},
		Disorders:   []string{"Kidney stones", "Urinary tract infection", "Chronic kidney disease"},
		Facts:       []string{"The kidneys filter about 180 liters of blood plasma a day", "Each kidney has around a million nephrons"},
	},
}

// AnatomySystems returns the catalogue in display order.
func AnatomySystems() []AnatomySystem {
	out := make([]AnatomySystem, 0, len(anatomyOrder))
	for _, id := range anatomyOrder {
		s := anatomySystems[id]
		s.ID = id
		out = append(out, s)
	}
	return out
}

func AnatomySystemByID(id string) (AnatomySystem, bool) {
	s, ok := anatomySystems[id]
	if !ok {
		return AnatomySystem{}, false
	}
	s.ID = id
	return s, true
}
