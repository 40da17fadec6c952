package catalog

import "github.com/fjod/chess_academy/internal/domain"

const (
	imgVideo    = "https://images.unsplash.com/photo-1612117229486-78abff6d84c3?w=1080"
	imgStrategy = "https://images.unsplash.com/photo-1523875194681-bedd468c58bf?w=1080"
	imgBoard    = "https://images.unsplash.com/photo-1653510640359-cbc4c1f3a90f?w=1080"
)

func defaultCourses() []domain.CatalogItem {
	return []domain.CatalogItem{
		{ID: 1, Title: "Complete Chess Beginner Course", Description: "Master the fundamentals of chess from opening to endgame",
			Price: 120000, Category: domain.KindVideo, Duration: "12 hours", Lessons: 48, Level: "Beginner", Image: imgVideo},
		{ID: 2, Title: "Advanced Chess Tactics", Description: "Learn powerful tactical patterns and combinations",
			Price: 150000, Category: domain.KindVideo, Duration: "18 hours", Lessons: 64, Level: "Advanced", Image: imgStrategy},
		{ID: 3, Title: "Chess Strategy Masterclass", Description: "Deep dive into positional play and strategic concepts",
			Price: 145000, Category: domain.KindVideo, Duration: "20 hours", Lessons: 72, Level: "Intermediate", Image: imgBoard},
		{ID: 4, Title: "Opening Repertoire E-Book", Description: "Complete guide to building your opening repertoire",
			Price: 100000, Category: domain.KindEbook, Duration: "350 pages", Lessons: 25, Level: domain.DefaultLevel, Image: imgStrategy},
		{ID: 5, Title: "Endgame Mastery E-Book", Description: "Essential endgame positions every player must know",
			Price: 110000, Category: domain.KindEbook, Duration: "420 pages", Lessons: 30, Level: "Intermediate", Image: imgBoard},
		{ID: 6, Title: "Chess Puzzle Collection", Description: "1000+ puzzles to sharpen your tactical vision",
			Price: 105000, Category: domain.KindEbook, Duration: "280 pages", Lessons: 1000, Level: domain.DefaultLevel, Image: imgVideo},
	}
}

func defaultAIPackages() []domain.AIPackage {
	return []domain.AIPackage{
		{ID: "ai-trial", Title: "AI Trainer - Free Trial", Description: "7 days of free access",
			Price: 0, OriginalPrice: 110000, DurationDays: 7,
			Features: []string{"7 days full access", "50 AI games", "Basic analysis", "Difficulty up to 2000 ELO"}},
		{ID: "ai-basic", Title: "AI Trainer - Basic", Description: "30 days of full access",
			Price: 110000, DurationDays: 30,
			Features: []string{"30 days full access", "500 AI games", "Advanced analysis", "Difficulty up to 2200 ELO"}},
		{ID: "ai-premium", Title: "AI Trainer - Premium", Description: "90 days of unlimited access",
			Price: 145000, DurationDays: 90,
			Features: []string{"90 days unlimited", "Unlimited AI games", "Expert analysis", "All difficulty levels", "Personalized hints", "Priority support"}},
	}
}

func defaultLevels() []domain.TrainingLevel {
	return []domain.TrainingLevel{
		{ID: "beginner-intermediate", Name: "Beginner to Intermediate",
			Description: "Build a strong foundation and improve fundamental skills",
			Focus:       []string{"Basic Opening", "Solid Moves", "Visualization", "Basic Ending"}, Rating: "100-1000 ELO"},
		{ID: "intermediate-advanced", Name: "Intermediate to Advanced",
			Description: "Refine your technique and develop strategic thinking",
			Focus:       []string{"Middlegame plan", "Gambit Opening", "Counter attack", "Prophylaxis"}, Rating: "1000-1800 ELO"},
		{ID: "advanced-competition", Name: "Advanced to International Competition",
			Description: "Master-level training for serious competitive players",
			Focus:       []string{"Piece Rotation", "Chess Pattern", "Opening Repertoire", "Advanced Tactics"}, Rating: "1800-2000+ ELO"},
	}
}

func defaultTrainers() []domain.Trainer {
	return []domain.Trainer{
		{ID: "trainer:1", Name: "GM Alexandra Petrov", Title: "Grandmaster", Rating: 2650,
			Specialties: []string{"Opening Theory", "Endgame", "Competition Prep"},
			Levels:      []string{"intermediate", "advanced", "competition"}, HourlyRate: 150000,
			Avatar: "https://images.unsplash.com/photo-1494790108377-be9c29b29330",
			Bio:    "Grandmaster with 15+ years of coaching experience.", Availability: []string{"Monday", "Wednesday", "Friday"}},
		{ID: "trainer:2", Name: "IM David Chen", Title: "International Master", Rating: 2480,
			Specialties: []string{"Tactics", "Strategy", "Youth Training"},
			Levels:      []string{"beginner", "intermediate", "advanced"}, HourlyRate: 100000,
			Avatar: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d",
			Bio:    "Specialized in teaching fundamentals and tactical patterns.", Availability: []string{"Tuesday", "Thursday", "Saturday"}},
		{ID: "trainer:3", Name: "WGM Sofia Martinez", Title: "Woman Grandmaster", Rating: 2420,
			Specialties: []string{"Positional Play", "Beginner Friendly", "Puzzle Training"},
			Levels:      []string{"beginner", "intermediate"}, HourlyRate: 80000,
			Avatar: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80",
			Bio:    "Patient instructor focused on building strong chess foundations.", Availability: []string{"Monday", "Tuesday", "Thursday", "Sunday"}},
	}
}
