package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/devfolio/portfolio-api/adapters/persistence"
	"github.com/devfolio/portfolio-api/internal/domain/profile"
	"github.com/devfolio/portfolio-api/pkg/apperror"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

func main() {
	fmt.Println("seeding portfolio profile into database...")

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	dsn := os.Getenv("DB_DSN")
	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	repo := persistence.NewPostgresProfileRepo(pool, logger.NewNop())

	seed := demoProfile()
	seed.Normalize()
	seed.EnsureSubIDs()

	created, err := repo.Insert(context.Background(), &seed)
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			fmt.Printf("profile '%s' already exists, nothing to do.\n", seed.Username)
			return
		}
		log.Fatalf("cannot seed profile: %v", err)
	}

	fmt.Printf("seeded profile '%s' (%s) successfully!\n", created.Username, created.ID)
}

func demoProfile() profile.Profile {
	return profile.Profile{
		Username: "vashu",
		Name:     "Vashu Kumar",
		Email:    "vashu.kumar@nitdelhi.ac.in",
		Title:    "Full Stack Developer & ML Enthusiast",
		Bio:      "B.Tech CSE student at NIT Delhi with expertise in full-stack web development and machine learning. Solved 450+ problems on LeetCode. Active in Tech Club and hackathons including Smart India Hackathon.",
		Education: &profile.Education{
			Degree:      "Bachelor of Technology in Computer Science Engineering",
			Institution: "National Institute of Technology Delhi",
			Year:        "Graduating 2027",
			Field:       "Computer Science Engineering",
			GPA:         "7.13 CGPA",
		},
		Skills: []string{
			"C", "C++", "Python", "JavaScript", "HTML", "CSS", "ReactJS",
			"Next.js", "Node.js", "React Native", "REST APIs", "PostgreSQL",
			"MySQL", "Git", "Streamlit", "NLTK", "Machine Learning",
			"Data Structures", "Algorithms",
		},
		Projects: []profile.Project{
			{
				Title:       "Legacy Locker",
				Description: "ML-Powered Password Manager with encryption, automation, and nominee-based credentials transfer. Built with Next.js and Python ML models.",
				Links: profile.ProjectLinks{
					GitHub: "https://github.com/vashu/legacy-locker",
					Live:   "https://legacy-locker.vercel.app",
				},
				Technologies: []string{"Next.js", "Python", "Machine Learning", "Encryption"},
				Featured:     true,
			},
			{
				Title:       "Coding Social Platform",
				Description: "A platform for developers to share and showcase their GitHub, LeetCode, and Codeforces profiles. Features real-time profile fetching via GitHub API.",
				Links: profile.ProjectLinks{
					GitHub: "https://github.com/vashu/coding-social",
					Live:   "https://coding-social.vercel.app",
				},
				Technologies: []string{"React.js", "Supabase", "GitHub API", "REST APIs"},
				Featured:     true,
			},
			{
				Title:       "Spam SMS Detector",
				Description: "Machine learning model to classify SMS messages as spam or ham using NLP techniques. Built with Streamlit for interactive UI.",
				Links: profile.ProjectLinks{
					GitHub: "https://github.com/vashu/spam-detector",
					Demo:   "https://spam-detector-vashu.streamlit.app",
				},
				Technologies: []string{"Python", "Streamlit", "NLTK", "Machine Learning", "NLP"},
			},
		},
		Work: []profile.WorkEntry{
			{
				Company:      "Tech Club - NIT Delhi",
				Position:     "Website Developer & Deputy General Secretary",
				Duration:     "Jan 2024 - Present",
				Description:  "Built and maintained the official website using ReactJS, HTML, CSS, and JavaScript.",
				Technologies: []string{"ReactJS", "HTML", "CSS", "JavaScript"},
			},
			{
				Company:      "LeetCode",
				Position:     "Competitive Programmer",
				Duration:     "2023 - Present",
				Description:  "Solved 450+ problems in C++, strengthening expertise in data structures and algorithms.",
				Technologies: []string{"C++", "Data Structures", "Algorithms"},
			},
		},
		Links: profile.Links{
			GitHub:    "https://github.com/Vashu157/",
			LinkedIn:  "https://www.linkedin.com/in/vashu-kumar",
			Portfolio: "https://vashu.dev",
			Email:     "kumarvashu157@gmail.com",
		},
		Rating: map[string]float64{
			"C++": 9, "Python": 7, "JavaScript": 8, "ReactJS": 9,
			"Machine Learning": 7, "Data Structures": 9, "Algorithms": 9,
			"PostgreSQL": 7, "REST APIs": 8, "Git": 8, "HTML": 9, "CSS": 8,
		},
	}
}
