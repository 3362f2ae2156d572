package api

// Health - ответ /health.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// User - профиль пользователя.
type User struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	NativeLanguage    string `json:"nativeLanguage"`
	LearningLanguage  string `json:"learningLanguage"`
	TTSSTTModeEnabled bool   `json:"ttsSttModeEnabled"`
}

// RegisterRequest - данные регистрации.
type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Name             string `json:"name,omitempty"`
	NativeLanguage   string `json:"nativeLanguage,omitempty"`
	LearningLanguage string `json:"learningLanguage,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse - ответ регистрации и входа.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Dubbing - озвучка ролика на другом языке.
type Dubbing struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	AudioURL string `json:"audioUrl"`
}

// Reel - короткое видео.
type Reel struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	VideoURL        string    `json:"videoUrl"`
	ThumbnailURL    string    `json:"thumbnailUrl"`
	DurationSeconds int       `json:"durationSeconds"`
	Language        string    `json:"language"`
	Order           int       `json:"order"`
	BatchID         string    `json:"batchId"`
	OrderInBatch    int       `json:"orderInBatch"`
	Dubbings        []Dubbing `json:"dubbings"`
}

// BatchQuestion - вопрос к пачке роликов.
type BatchQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// ReelBatch - пачка из пяти роликов с вопросом.
type ReelBatch struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Order     int            `json:"order"`
	CreatedAt string         `json:"createdAt"`
	Reels     []Reel         `json:"reels"`
	Question  *BatchQuestion `json:"question"`
}

type ttsRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
	Voice    string `json:"voice,omitempty"`
}

type ttsResponse struct {
	AudioURL string `json:"audioUrl"`
}

type sttRequest struct {
	AudioURLOrBase64 string `json:"audioUrlOrBase64"`
	Language         string `json:"language,omitempty"`
}

type sttResponse struct {
	Text string `json:"text"`
}
