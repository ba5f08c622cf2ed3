package render

import (
	"fmt"
	"html/template"
	"strings"
)

// signUpTemplate shows the freshly issued access key once; the server never
// stores a recoverable copy for the user.
const signUpTemplate = `<div class='bg-secondary shadow sm:rounded-lg p-6 mx-auto mt-10' style='width: 50%;'>
  <h3 class='px-4 text-base font-semibold leading-6 text-white text-center'>Save Your Private Key:</h3>
  <div class='mt-2 text-sm text-gray-300 text-center'>
    <p>If on web save it as a file (recommended to use encrypted filesystem)</p>
    <p>If on mobile save it in notes</p>
  </div>
  <div hx-boost='true' class='flex flex-col items-center w-full'>
    <div class='flex pt-3 mb-5 w-full mx-auto items-center'>
      <label class='inline-block text-xs font-medium text-white ml-auto align-middle'>
        Private Key:
      </label>
      <input
        id='hash-key'
        class='inline-block w-1/3 rounded-md ml-1 mr-auto border-0 py-1.5 text-gray-900 shadow-sm ring-1 ring-inset ring-gray-300 text-center'
        value='{{.}}'
      ></input>
    </div>
    <a
      href='/sign-in'
      class='mt-10 w-12 items-center justify-center rounded-md bg-accent px-3 py-2 text-sm font-semibold text-white shadow-sm sm:ml-3 sm:mt-0 sm:w-auto'
    >
      I Saved It
    </a>
  </div>
</div>`

var signUpKey = template.Must(template.New("signUpKey").Parse(signUpTemplate))

// SignUpKey renders the post-sign-up fragment presenting the access key.
func SignUpKey(key string) (string, error) {
	var b strings.Builder
	if err := signUpKey.Execute(&b, key); err != nil {
		return "", fmt.Errorf("rendering sign-up fragment: %w", err)
	}
	return b.String(), nil
}
