package recipe

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// Intent selects which prompt family to use.
type Intent int

const (
	IntentRecipeFromIngredients Intent = iota
	IntentNutritionFromImage
	IntentRecipeFromDetectedIngredients
)

func (i Intent) String() string {
	switch i {
	case IntentRecipeFromIngredients:
		return "recipe-from-ingredients"
	case IntentNutritionFromImage:
		return "nutrition-from-image"
	case IntentRecipeFromDetectedIngredients:
		return "recipe-from-detected-ingredients"
	default:
		return "unknown"
	}
}

// DefaultLanguage is used whenever a language has no template.
const DefaultLanguage = "en"

const ingredientsPlaceholder = "{ingredients}"

// Prompt returns the instruction text for intent in language, with the
// ingredient list interpolated. Unknown languages fall back to DefaultLanguage.
func Prompt(intent Intent, lang, ingredients string) string {
	templates, ok := catalog[intent]
	if !ok {
		return ""
	}
	tmpl, ok := templates[NormalizeLanguage(lang)]
	if !ok {
		tmpl = templates[DefaultLanguage]
	}
	return strings.TrimSpace(strings.ReplaceAll(tmpl, ingredientsPlaceholder, ingredients))
}

// NormalizeLanguage reduces a language tag such as "es-MX" or " EN " to its
// lowercase base language.
func NormalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(lang)
	}
	base, _ := tag.Base()
	return base.String()
}

// IsSupported reports whether lang normalizes to a language with templates.
func IsSupported(lang string) bool {
	_, ok := recipeFromIngredients[NormalizeLanguage(lang)]
	return ok
}

// SupportedLanguages lists the languages with a full set of templates, sorted.
func SupportedLanguages() []string {
	langs := make([]string, 0, len(recipeFromIngredients))
	for lang := range recipeFromIngredients {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

var catalog = map[Intent]map[string]string{
	IntentRecipeFromIngredients:         recipeFromIngredients,
	IntentNutritionFromImage:            nutritionFromImage,
	IntentRecipeFromDetectedIngredients: recipeFromDetectedIngredients,
}

// nutritionSchema is appended to every nutrition prompt. Keys stay in English
// so the payload decodes regardless of the response language.
const nutritionSchema = `
Respond with ONLY one JSON object. No markdown, no code fences, no explanations.
List at most 10 foods. All numbers are non-negative; calories in kcal, nutrients in grams.
If the image contains no food, return {"ingredients": [], "foods": [], "overallAssessment": ""}.

Required JSON schema:
{
  "ingredients": ["string"],
  "foods": [
    {
      "name": "string",
      "quantity": "string",
      "calories": number,
      "protein": number,
      "carbs": number,
      "fat": number,
      "fiber": number,
      "sugar": number,
      "isHealthy": boolean,
      "reason": "string"
    }
  ],
  "overallAssessment": "string"
}`

var nutritionFromImage = map[string]string{
	"en": "Analyze this food image and return JSON with ingredients and nutrition info in English." + nutritionSchema,
	"es": "Analiza esta imagen de comida y devuelve JSON con ingredientes e información nutricional en español." + nutritionSchema,
	"fr": "Analysez cette image de nourriture et renvoyez un JSON avec les ingrédients et les informations nutritionnelles en français." + nutritionSchema,
	"de": "Analysieren Sie dieses Lebensmittelbild und geben Sie JSON mit Zutaten und Nährwertangaben auf Deutsch zurück." + nutritionSchema,
	"it": "Analizza questa immagine di cibo e restituisci JSON con ingredienti e informazioni nutrizionali in italiano." + nutritionSchema,
	"pt": "Analise esta imagem de comida e retorne JSON com ingredientes e informações nutricionais em português." + nutritionSchema,
	"hi": "इस भोजन की छवि का विश्लेषण करें और हिंदी में सामग्री और पोषण संबंधी जानकारी के साथ JSON लौटाएं।" + nutritionSchema,
	"ja": "この食品画像を分析し、日本語で材料と栄養情報を含むJSONを返してください。" + nutritionSchema,
	"zh": "分析这张食物图片并返回包含中文的配料和营养信息的JSON。" + nutritionSchema,
	"ar": "حلل صورة الطعام هذه وقم بإرجاع JSON مع المكونات والمعلومات الغذائية باللغة العربية." + nutritionSchema,
	"ru": "Проанализируйте это изображение еды и верните JSON с ингредиентами и информацией о питании на русском языке." + nutritionSchema,
	"ko": "이 음식 이미지를 분석하고 한국어로 재료와 영양 정보가 포함된 JSON을 반환하세요." + nutritionSchema,
	"mr": "या अन्नाच्या प्रतिमेचे विश्लेषण करा आणि मराठीत साहित्य आणि पोषण माहितीसह JSON परत करा." + nutritionSchema,
}

var recipeFromIngredients = map[string]string{
	"en": `
You are a professional chef. Create a full recipe using only: {ingredients}.
Include in English:
- Recipe Title
- Description
- Ingredients List
- Detailed Step-by-step Instructions
- Nutritional Info (calories, protein, carbs, fats)
- Cooking Time
Format as clean Markdown with ## headings for each section.`,
	"es": `
Eres un chef profesional. Crea una receta usando solo: {ingredients}.
Incluye en español:
- Título de la receta
- Descripción
- Lista de ingredientes
- Instrucciones paso a paso
- Información nutricional (calorías, proteínas, carbohidratos, grasas)
- Tiempo de cocción
Formato Markdown con ## encabezados para cada sección.`,
	"fr": `
Vous êtes un chef professionnel. Créez une recette complète en utilisant uniquement: {ingredients}.
Incluez en français:
- Titre de la recette
- Description
- Liste des ingrédients
- Instructions détaillées étape par étape
- Informations nutritionnelles (calories, protéines, glucides, lipides)
- Temps de cuisson
Format Markdown avec des en-têtes ## pour chaque section.`,
	"de": `
Sie sind ein professioneller Koch. Erstellen Sie ein vollständiges Rezept mit nur: {ingredients}.
Enthalten Sie auf Deutsch:
- Rezepttitel
- Beschreibung
- Zutatenliste
- Detaillierte Schritt-für-Schritt-Anleitung
- Nährwertangaben (Kalorien, Eiweiß, Kohlenhydrate, Fette)
- Kochzeit
Formatieren Sie es als Markdown mit ## Überschriften für jeden Abschnitt.`,
	"it": `
Sei uno chef professionista. Crea una ricetta completa usando solo: {ingredients}.
Includi in italiano:
- Titolo della ricetta
- Descrizione
- Lista degli ingredienti
- Istruzioni dettagliate passo dopo passo
- Informazioni nutrizionali (calorie, proteine, carboidrati, grassi)
- Tempo di cottura
Formattalo come Markdown con intestazioni ## per ogni sezione.`,
	"pt": `
Você é um chef profissional. Crie uma receita completa usando apenas: {ingredients}.
Inclua em português:
- Título da receita
- Descrição
- Lista de ingredientes
- Instruções detalhadas passo a passo
- Informações nutricionais (calorias, proteínas, carboidratos, gorduras)
- Tempo de cozimento
Formate como Markdown com cabeçalhos ## para cada seção.`,
	"hi": `
आप एक पेशेवर शेफ हैं। केवल इन सामग्रियों का उपयोग करके एक पूर्ण रेसिपी बनाएं: {ingredients}.
हिंदी में शामिल करें:
- रेसिपी का शीर्षक
- विवरण
- सामग्री सूची
- विस्तृत चरण-दर-चरण निर्देश
- पोषण संबंधी जानकारी (कैलोरी, प्रोटीन, कार्ब्स, वसा)
- पकाने का समय
प्रत्येक अनुभाग के लिए ## हेडिंग के साथ मार्कडाउन के रूप में प्रारूपित करें।`,
	"ja": `
あなたはプロのシェフです。次の材料のみを使用して完全なレシピを作成してください: {ingredients}.
日本語で含めるもの:
- レシピタイトル
- 説明
- 材料リスト
- 詳細なステップバイステップの手順
- 栄養情報 (カロリー、タンパク質、炭水化物、脂肪)
- 調理時間
各セクションに##見出しを付けてMarkdown形式でフォーマットしてください。`,
	"zh": `
你是一位专业厨师。仅使用以下材料创建完整食谱: {ingredients}.
用中文包括:
- 食谱标题
- 描述
- 配料表
- 详细的分步说明
- 营养信息(卡路里、蛋白质、碳水化合物、脂肪)
- 烹饪时间
使用Markdown格式，每个部分用##标题。`,
	"ar": `
أنت طاهٍ محترف. أنشئ وصفة كاملة باستخدام: {ingredients} فقط.
قم بتضمين باللغة العربية:
- عنوان الوصفة
- الوصف
- قائمة المكونات
- تعليمات مفصلة خطوة بخطوة
- المعلومات الغذائية (السعرات الحرارية، البروتين، الكربوهيدرات، الدهون)
- وقت الطهي
قم بتنسيقه كـ Markdown مع عناوين ## لكل قسم.`,
	"ru": `
Вы профессиональный шеф-повар. Создайте полный рецепт, используя только: {ingredients}.
Включите на русском:
- Название рецепта
- Описание
- Список ингредиентов
- Подробные пошаговые инструкции
- Пищевая ценность (калории, белки, углеводы, жиры)
- Время приготовления
Форматируйте как Markdown с заголовками ## для каждого раздела.`,
	"ko": `
당신은 전문 셰프입니다. 다음 재료만 사용하여 완전한 레시피를 만드세요: {ingredients}.
한국어로 포함할 내용:
- 레시피 제목
- 설명
- 재료 목록
- 상세한 단계별 지침
- 영양 정보 (칼로리, 단백질, 탄수화물, 지방)
- 조리 시간
각 섹션에 ## 제목을 사용하여 Markdown 형식으로 작성하세요.`,
	"mr": `
तुम्ही एक व्यावसायिक स्वयंपाकी आहात. फक्त या साहित्याचा वापर करून एक पूर्ण पाककृती तयार करा: {ingredients}.
मराठीत समाविष्ट करा:
- पाककृतीचे शीर्षक
- वर्णन
- साहित्य यादी
- तपशीलवार चरण-दर-चरण सूचना
- पोषण माहिती (कॅलरी, प्रथिने, कर्बोदके, चरबी)
- स्वयंपाक करण्याची वेळ
प्रत्येक विभागासाठी ## शीर्षकांसह मार्कडाउन स्वरूपात लिहा.`,
}

var recipeFromDetectedIngredients = map[string]string{
	"en": `
Create a full recipe in English with Markdown formatting including all sections, using: {ingredients}.
Include, each under its own ## heading:
- Title
- Description
- Ingredients
- Instructions
- Nutrition (calories, protein, carbs, fats)
- Cooking Time`,
	"es": `
Crea una receta completa en español con formato Markdown incluyendo todas las secciones, usando: {ingredients}.
Incluye, cada una con su propio encabezado ##:
- Título
- Descripción
- Ingredientes
- Instrucciones
- Nutrición (calorías, proteínas, carbohidratos, grasas)
- Tiempo de cocción`,
	"fr": `
Créez une recette complète en français avec mise en forme Markdown incluant toutes les sections, en utilisant: {ingredients}.
Incluez, chacune sous son propre en-tête ##:
- Titre
- Description
- Ingrédients
- Instructions
- Nutrition (calories, protéines, glucides, lipides)
- Temps de cuisson`,
	"de": `
Erstellen Sie ein vollständiges Rezept auf Deutsch mit Markdown-Formatierung, einschließlich aller Abschnitte, mit: {ingredients}.
Enthalten Sie, jeweils unter einer eigenen ## Überschrift:
- Titel
- Beschreibung
- Zutaten
- Anleitung
- Nährwerte (Kalorien, Eiweiß, Kohlenhydrate, Fette)
- Kochzeit`,
	"it": `
Crea una ricetta completa in italiano con formattazione Markdown includendo tutte le sezioni, usando: {ingredients}.
Includi, ciascuna con la propria intestazione ##:
- Titolo
- Descrizione
- Ingredienti
- Istruzioni
- Valori nutrizionali (calorie, proteine, carboidrati, grassi)
- Tempo di cottura`,
	"pt": `
Crie uma receita completa em português com formatação Markdown incluindo todas as seções, usando: {ingredients}.
Inclua, cada uma com seu próprio cabeçalho ##:
- Título
- Descrição
- Ingredientes
- Instruções
- Nutrição (calorias, proteínas, carboidratos, gorduras)
- Tempo de cozimento`,
	"hi": `
सभी अनुभागों सहित मार्कडाउन फ़ॉर्मेटिंग के साथ हिंदी में एक पूर्ण रेसिपी बनाएं, इनका उपयोग करके: {ingredients}.
प्रत्येक को अपनी ## हेडिंग के साथ शामिल करें:
- शीर्षक
- विवरण
- सामग्री
- निर्देश
- पोषण (कैलोरी, प्रोटीन, कार्ब्स, वसा)
- पकाने का समय`,
	"ja": `
すべてのセクションを含むMarkdown形式で日本語で完全なレシピを作成してください。使用する材料: {ingredients}.
それぞれ##見出しを付けて含めてください:
- タイトル
- 説明
- 材料
- 手順
- 栄養 (カロリー、タンパク質、炭水化物、脂肪)
- 調理時間`,
	"zh": `
使用Markdown格式创建包含所有部分的中文完整食谱，使用: {ingredients}.
每个部分使用##标题:
- 标题
- 描述
- 配料
- 步骤
- 营养(卡路里、蛋白质、碳水化合物、脂肪)
- 烹饪时间`,
	"ar": `
قم بإنشاء وصفة كاملة باللغة العربية بتنسيق Markdown تتضمن جميع الأقسام، باستخدام: {ingredients}.
ضع كل قسم تحت عنوان ## خاص به:
- العنوان
- الوصف
- المكونات
- التعليمات
- القيمة الغذائية (السعرات الحرارية، البروتين، الكربوهيدرات، الدهون)
- وقت الطهي`,
	"ru": `
Создайте полный рецепт на русском языке с разметкой Markdown, включая все разделы, используя: {ingredients}.
Каждый раздел под своим заголовком ##:
- Название
- Описание
- Ингредиенты
- Инструкции
- Пищевая ценность (калории, белки, углеводы, жиры)
- Время приготовления`,
	"ko": `
모든 섹션을 포함한 Markdown 형식으로 한국어로 완전한 레시피를 만드세요. 사용할 재료: {ingredients}.
각 섹션에 ## 제목을 붙여 포함하세요:
- 제목
- 설명
- 재료
- 조리법
- 영양 (칼로리, 단백질, 탄수화물, 지방)
- 조리 시간`,
	"mr": `
सर्व विभागांसह मार्कडाउन स्वरूपनासह मराठीत एक पूर्ण पाककृती तयार करा, हे वापरून: {ingredients}.
प्रत्येक विभाग स्वतःच्या ## शीर्षकाखाली लिहा:
- शीर्षक
- वर्णन
- साहित्य
- सूचना
- पोषण (कॅलरी, प्रथिने, कर्बोदके, चरबी)
- स्वयंपाक करण्याची वेळ`,
}
