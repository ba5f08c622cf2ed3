package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/korvo-dev/echofeed/backend/internal/models"
)

// cardTemplate is the HTMX feed card fragment. Every post field passes
// through html/template escaping because the feed content is third-party
// controlled.
const cardTemplate = `<li
    hx-boost='true'
    key='{{.ID}}'
    class='overflow-hidden bg-secondary rounded-xl border border-gray-200 max-h-44'
  >
  <a href='{{.URL}}'>
  <div class='w-full group relative cursor-pointer overflow-hidden bg-secondary px-6 pt-1 shadow-xl ring-1 ring-gray-900/5 transition-all duration-300 hover:-translate-y-1 hover:shadow-2xl sm:mx-auto sm:rounded-lg sm:px-10'>
    <span class='absolute inset-x-0 top-0 h-6 w-full bg-accent transition-all duration-300 group-hover:scale-[100]'></span>
    <div class='relative z-10 mx-auto max-w-md'>
      <div class='space-y-1 pt-5 text-base leading-7 text-gray-600 transition-all duration-300 group-hover:text-white/90'>
        <h3 class='truncate text-xl font-extrabold text-white'>{{.Title}}</h3>
        <p class='mt-1 truncate text-sm text-gray-100'>Author: {{.Author}}</p>
      </div>
      <form
        class='save-post-form flex w-full'
        hx-post='/auth-actions/save'
        hx-trigger='submit'
        hx-target='#save-btn-{{.ID}}'
        hx-swap='outerHTML'
        hx-ext='json-enc'
        hx-indicator='#spinner'
      >
        <input id='id' name='id' class='invisible hidden' value='{{.ID}}'></input>
        <input id='title' name='title' class='invisible hidden' value='{{.Title}}'></input>
        <input id='author' name='author' class='invisible hidden' value='{{.Author}}'></input>
        <input id='url' name='url' class='invisible hidden' value='{{.URL}}'></input>
        <input id='timestamp' name='timestamp' class='invisible hidden' value='{{.Timestamp}}'></input>
        <button
          id='save-btn-{{.ID}}'
          type='submit'
          class='save-post-btn rounded-md mx-auto my-5 bg-primary px-3.5 py-2.5 text-sm font-semibold text-white shadow-sm hover:bg-white/50 transition-all duration-300 group-hover:bg-secondary'
        >
          <span id='save-post-text'>Save Post</span>
          <div id='spinner' class='htmx-indicator inline w-4 h-4 mr-3 text-accent animate-spin'></div>
        </button>
      </form>
    </div>
  </div>
  </a>
</li>`

// SavedButtonFragment replaces the save button after a successful save.
const SavedButtonFragment = `<button
  id='save-btn'
  type='submit'
  class='rounded-md bg-primary px-3.5 py-2.5 text-sm font-semibold text-white shadow-lg'
>Saved</button>`

var card = template.Must(template.New("card").Parse(cardTemplate))

// Card renders one post into its display fragment.
func Card(post models.Post) (string, error) {
	var b strings.Builder
	if err := card.Execute(&b, post); err != nil {
		return "", fmt.Errorf("rendering card for post %s: %w", post.ID, err)
	}
	return b.String(), nil
}

// Cards renders posts in order and concatenates the fragments.
func Cards(posts []models.Post) (string, error) {
	var b strings.Builder
	for _, post := range posts {
		fragment, err := Card(post)
		if err != nil {
			return "", err
		}
		b.WriteString(fragment)
	}
	return b.String(), nil
}
