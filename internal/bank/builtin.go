package bank

import "trivia-quiz/internal/domain"

func q(text string, options []string, correct string) domain.Question {
	return domain.Question{Text: text, Options: options, CorrectAnswer: correct}
}

var builtin = map[domain.Difficulty][]domain.Question{
	domain.Easy: {
		q("What is the capital of France?", []string{"Paris", "London", "Berlin", "Rome"}, "Paris"),
		q("2 + 2?", []string{"3", "4", "5", "6"}, "4"),
		q("How many continents are there?", []string{"5", "6", "7", "8"}, "7"),
		q("What is the largest ocean on Earth?", []string{"Atlantic", "Pacific", "Indian", "Arctic"}, "Pacific"),
		q("What is the chemical symbol for water?", []string{"H2O", "CO2", "NaCl", "O2"}, "H2O"),
		q("What is the largest planet in our solar system?", []string{"Mars", "Jupiter", "Venus", "Saturn"}, "Jupiter"),
		q("How many legs does a spider have?", []string{"6", "8", "10", "12"}, "8"),
		q("What color is an apple?", []string{"Green", "Red", "Yellow", "Purple"}, "Red"),
		q("What is the opposite of black?", []string{"White", "Red", "Blue", "Green"}, "White"),
		q("What is the highest mountain in the world?", []string{"K2", "Kangchenjunga", "Mount Everest", "Lhotse"}, "Mount Everest"),
		q("What is the capital of Spain?", []string{"Madrid", "Barcelona", "Valencia", "Seville"}, "Madrid"),
		q("How many days are there in a week?", []string{"5", "6", "7", "8"}, "7"),
		q("Which river flows through London?", []string{"Thames", "Seine", "Danube", "Rhine"}, "Thames"),
		q("What currency is used in the United States?", []string{"Dollar", "Euro", "Pound", "Yen"}, "Dollar"),
		q("What is the largest desert in the world?", []string{"Sahara", "Gobi", "Arabian", "Kalahari"}, "Sahara"),
	},
	domain.Normal: {
		q("Which is the largest planet?", []string{"Earth", "Mars", "Jupiter", "Venus"}, "Jupiter"),
		q("What is the atomic number of oxygen?", []string{"6", "7", "8", "9"}, "8"),
		q("Who painted the Mona Lisa?", []string{"Michelangelo", "Leonardo da Vinci", "Raphael", "Donatello"}, "Leonardo da Vinci"),
		q("What is the capital of Italy?", []string{"Rome", "Milan", "Venice", "Florence"}, "Rome"),
		q("Which is the highest mountain in the world?", []string{"K2", "Kangchenjunga", "Mount Everest", "Lhotse"}, "Mount Everest"),
		q("What is the second largest planet in our solar system?", []string{"Mars", "Jupiter", "Venus", "Saturn"}, "Saturn"),
		q("How many bones are in the human body?", []string{"206", "213", "220", "227"}, "206"),
		q("What is the chemical symbol for gold?", []string{"Go", "Gd", "Gl", "Au"}, "Au"),
		q("What is the largest lake in the world by area of fresh water?", []string{"Superior", "Victoria", "Huron", "Michigan"}, "Superior"),
		q("What currency is used in Japan?", []string{"Yen", "Won", "Rupee", "Dollar"}, "Yen"),
		q("What is the largest country in South America?", []string{"Brazil", "Argentina", "Colombia", "Peru"}, "Brazil"),
		q("How many teeth does an adult human have?", []string{"28", "30", "32", "34"}, "32"),
		q("What is the star closest to Earth?", []string{"Sun", "Sirius", "Alpha Centauri", "Proxima Centauri"}, "Sun"),
		q("What is the smallest country in the world?", []string{"Monaco", "Nauru", "Tuvalu", "Vatican City"}, "Vatican City"),
		q("What is the longest river in the world?", []string{"Nile", "Amazon", "Yangtze", "Mississippi"}, "Nile"),
	},
	domain.Hard: {
		q("Who wrote '1984'?", []string{"Orwell", "Huxley", "Bradbury", "Asimov"}, "Orwell"),
		q("In E=mc^2, what does 'c' stand for?", []string{"Charge", "Speed of light", "Current", "Constant"}, "Speed of light"),
		q("What is the speed of light in a vacuum?", []string{"299,792,458 m/s", "300,000,000 m/s", "250,000,000 m/s", "200,000,000 m/s"}, "299,792,458 m/s"),
		q("What is the largest country in the world by area?", []string{"Russia", "China", "USA", "Canada"}, "Russia"),
		q("What currency is used in Japan?", []string{"Yen", "Won", "Rupee", "Dollar"}, "Yen"),
		q("Who was the first human to travel to space?", []string{"Neil Armstrong", "Buzz Aldrin", "Yuri Gagarin", "John Glenn"}, "Yuri Gagarin"),
		q("What is the largest moon of Saturn?", []string{"Titan", "Enceladus", "Mimas", "Tethys"}, "Titan"),
		q("What is the most abundant element in the universe?", []string{"Hydrogen", "Helium", "Oxygen", "Carbon"}, "Hydrogen"),
		q("What process do plants use to turn light into chemical energy?", []string{"Photosynthesis", "Respiration", "Digestion", "Excretion"}, "Photosynthesis"),
		q("What force keeps objects from floating away from Earth?", []string{"Gravity", "Magnetism", "Friction", "Buoyancy"}, "Gravity"),
		q("Which theory describes the movement of Earth's continents?", []string{"Plate tectonics", "Continental drift", "Seafloor spreading", "Subduction"}, "Plate tectonics"),
		q("What phenomenon causes the tides on Earth?", []string{"Gravity", "Magnetism", "Friction", "Buoyancy"}, "Gravity"),
		q("Which galaxy contains our solar system?", []string{"Milky Way", "Andromeda", "Triangulum", "Sombrero"}, "Milky Way"),
		q("Which event is believed to have started the universe?", []string{"Big Bang", "Big Crunch", "Steady State", "Inflation"}, "Big Bang"),
		q("What is the study of stars and other celestial bodies called?", []string{"Astronomy", "Astrology", "Cosmology", "Physics"}, "Astronomy"),
	},
}
