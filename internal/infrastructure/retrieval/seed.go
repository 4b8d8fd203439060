package retrieval

import "github.com/nutriplan/v1/internal/ports/outbound"

// SeedDocuments returns the built-in cookbook used when no external knowledge
// base is configured. Entries cover the common dietary profiles so retrieval
// has something relevant for most queries.
func SeedDocuments() []outbound.Document {
	return []outbound.Document{
		{
			ID:    "kb-001",
			Title: "Quinoa Chickpea Bowl",
			Content: "A vegan, gluten-free bowl. Ingredients: quinoa, chickpeas, " +
				"roasted sweet potato, kale, tahini, lemon juice, olive oil. " +
				"High in fiber and plant protein, low sodium. Suits diabetes-friendly " +
				"meal plans when served without added sugar dressings.",
		},
		{
			ID:    "kb-002",
			Title: "Baked Lemon Herb Salmon",
			Content: "Pescatarian main. Ingredients: salmon fillet, lemon, dill, " +
				"garlic, olive oil, black pepper. Rich in omega-3 fats, naturally " +
				"low in carbohydrates. Season without salt for low-sodium diets.",
		},
		{
			ID:    "kb-003",
			Title: "Lentil Vegetable Soup",
			Content: "Vegetarian and vegan. Ingredients: red lentils, carrot, celery, " +
				"onion, garlic, cumin, vegetable broth. Use a no-salt-added broth to " +
				"keep sodium under 300mg per serving. High fiber, good for heart-healthy " +
				"and diabetic meal plans.",
		},
		{
			ID:    "kb-004",
			Title: "Grilled Chicken with Steamed Vegetables",
			Content: "Lean protein main. Ingredients: chicken breast, broccoli, " +
				"zucchini, bell pepper, olive oil, herbs. Low saturated fat, no added " +
				"sugar. Fits hypertension-friendly plans when seasoned without salt.",
		},
		{
			ID:    "kb-005",
			Title: "Overnight Oats with Berries",
			Content: "Vegetarian breakfast. Ingredients: rolled oats, unsweetened " +
				"almond milk, chia seeds, blueberries, cinnamon. Gluten-free when made " +
				"with certified oats, dairy-free, no added sugar. Slow-release " +
				"carbohydrates suit blood sugar management.",
		},
		{
			ID:    "kb-006",
			Title: "Tofu Stir-Fry with Brown Rice",
			Content: "Vegan main. Ingredients: firm tofu, brown rice, snap peas, " +
				"carrot, ginger, garlic, low-sodium soy sauce, sesame oil. Swap soy " +
				"sauce for coconut aminos to cut sodium further or to avoid soy-based " +
				"seasonings in gluten-free plans.",
		},
		{
			ID:    "kb-007",
			Title: "Mediterranean Bean Salad",
			Content: "Vegetarian side or light main. Ingredients: cannellini beans, " +
				"cherry tomatoes, cucumber, red onion, parsley, olive oil, red wine " +
				"vinegar. No cooking required. High fiber, low saturated fat, " +
				"naturally dairy-free and gluten-free.",
		},
		{
			ID:    "kb-008",
			Title: "Turkey and Vegetable Skillet",
			Content: "Lean ground turkey with spinach, mushrooms, tomatoes, garlic " +
				"and Italian herbs. Lower in saturated fat than beef dishes. Serve " +
				"over cauliflower rice for a low-carbohydrate dinner.",
		},
	}
}
