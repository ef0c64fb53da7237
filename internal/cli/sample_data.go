package cli

import "portal-learning/internal/domain"

// sampleScenarios is a minimal training catalog for demo mode and seeding;
// production content is curated through the admin screens.
func sampleScenarios() []domain.Scenario {
	return []domain.Scenario{
		{
			ID:          1,
			Title:       "Appel résiliation",
			Description: "Un adhérent appelle pour résilier son contrat santé. Quelle est la première chose à faire ?",
			Choices: []string{
				"Transférer immédiatement au service résiliation",
				"Comprendre le motif et vérifier les garanties actuelles",
				"Proposer une remise sans poser de question",
			},
			CorrectAnswer: 1,
			Points:        10,
			Category:      "fidélisation",
			Difficulty:    domain.DifficultyEasy,
		},
		{
			ID:          2,
			Title:       "Remboursement optique",
			Description: "Un adhérent conteste le montant remboursé pour ses lunettes. Que vérifier en priorité ?",
			Choices: []string{
				"Le plafond optique de sa formule et la date du dernier équipement",
				"Son relevé d'identité bancaire",
				"La date de son prochain rendez-vous",
			},
			CorrectAnswer: 0,
			Points:        10,
			Category:      "remboursements",
			Difficulty:    domain.DifficultyMedium,
		},
		{
			ID:          3,
			Title:       "Réclamation écrite",
			Description: "Un adhérent menace de saisir le médiateur. Quelle réponse est conforme à la procédure ?",
			Choices: []string{
				"Lui indiquer que ce n'est pas possible",
				"Enregistrer la réclamation et annoncer le délai de réponse réglementaire",
				"Promettre un geste commercial immédiat",
			},
			CorrectAnswer: 1,
			Points:        20,
			Category:      "réclamations",
			Difficulty:    domain.DifficultyHard,
		},
	}
}

func sampleBadges() []domain.Badge {
	return []domain.Badge{
		{
			ID:          1,
			Name:        "Première victoire",
			Description: "Premier scénario réussi",
			Requirement: domain.BadgeRequirement{MinScenarios: 1},
			Points:      50,
		},
		{
			ID:          2,
			Name:        "Centurion",
			Description: "100 points accumulés",
			Requirement: domain.BadgeRequirement{MinPoints: 100},
			Points:      50,
		},
	}
}
