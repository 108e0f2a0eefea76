package knowledge

import "github.com/clinical-dss-server/internal/domain"

// distinguishingFeatures is the hand-authored table of features that help
// separate commonly confused diagnosis pairs. Lookups check both orderings
// of a pair; only one ordering is authored here.
var distinguishingFeatures = map[contrastKey][]domain.FeatureContrast{
	{"dengue", "malaria"}: {
		{
			Feature:       "fever_pattern",
			MeaningForDx1: "Continuous or biphasic (saddleback) fever",
			MeaningForDx2: "Classic periodicity, spiking every 48-72 hours with chills",
		},
		{
			Feature:       "fever_with_rash",
			MeaningForDx1: "Maculopapular or petechial rash is common",
			MeaningForDx2: "Rash is rare and argues against malaria",
		},
		{
			Feature:       "retro_orbital_pain",
			MeaningForDx1: "Characteristic pain behind the eyes",
			MeaningForDx2: "Not a typical feature",
		},
	},
	{"dengue", "chikungunya"}: {
		{
			Feature:       "joint_pain",
			MeaningForDx1: "Myalgia and bone pain dominate; arthritis unusual",
			MeaningForDx2: "Severe symmetric polyarthralgia, often incapacitating",
		},
		{
			Feature:       "bleeding_gums",
			MeaningForDx1: "Bleeding manifestations suggest plasma leakage",
			MeaningForDx2: "Hemorrhage is rare",
		},
	},
	{"typhoid", "malaria"}: {
		{
			Feature:       "step_ladder_fever",
			MeaningForDx1: "Classically rises in a step-ladder pattern over days",
			MeaningForDx2: "Intermittent spikes with rigors, not progressive",
		},
		{
			Feature:       "relative_bradycardia",
			MeaningForDx1: "Pulse slower than expected for the temperature",
			MeaningForDx2: "Tachycardia proportional to fever",
		},
	},
	{"migraine", "meningitis"}: {
		{
			Feature:       "neck_stiffness",
			MeaningForDx1: "Absent; neck is supple",
			MeaningForDx2: "Nuchal rigidity is a cardinal sign",
		},
		{
			Feature:       "fever",
			MeaningForDx1: "Not a feature of migraine",
			MeaningForDx2: "High fever usual in bacterial meningitis",
		},
	},
	{"viral_fever", "influenza"}: {
		{
			Feature:       "onset",
			MeaningForDx1: "Gradual onset over a day or two",
			MeaningForDx2: "Abrupt onset with prominent myalgia",
		},
	},
}
